package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/tx7do/go-utils/mapper"

	"github.com/workshift/go-crud/rdb/filter"
	"github.com/workshift/go-crud/result"
	"github.com/workshift/go-crud/viewer"
)

const (
	// DefaultOperator 匿名调用时记录的操作人
	DefaultOperator = "ADMIN"

	// MetadataFieldName / MetadataErrorMessage 业务错误 metadata 的键
	MetadataFieldName    = "FieldName"
	MetadataErrorMessage = "ErrorMessage"

	ReasonValidation = "FIELD_VALIDATION"
	ReasonEmptyIDs   = "EMPTY_IDS"
	ReasonNotFound   = "SHIFT_NOT_FOUND"

	messageValidation = "Field validation errors"
	messageEmptyIDs   = "Không tìm thấy id."
)

// Service 班次业务服务
type Service struct {
	repo *Repository

	addMapper    *mapper.CopierMapper[AddRequest, Shift]
	updateMapper *mapper.CopierMapper[UpdateRequest, Shift]

	now func() time.Time

	log *log.Helper
}

func NewService(repo *Repository, logger log.Logger) *Service {
	if logger == nil {
		logger = log.DefaultLogger
	}
	return &Service{
		repo:         repo,
		addMapper:    mapper.NewCopierMapper[AddRequest, Shift](),
		updateMapper: mapper.NewCopierMapper[UpdateRequest, Shift](),
		now:          func() time.Time { return time.Now().UTC().Truncate(time.Second) },
		log:          log.NewHelper(log.With(logger, "module", "shift/service")),
	}
}

func fieldError(reason, field, message string) *errors.Error {
	return errors.BadRequest(reason, messageValidation).WithMetadata(map[string]string{
		MetadataFieldName:    field,
		MetadataErrorMessage: message,
	})
}

func notFoundError(field, message string) *errors.Error {
	return errors.NotFound(ReasonNotFound, messageValidation).WithMetadata(map[string]string{
		MetadataFieldName:    field,
		MetadataErrorMessage: message,
	})
}

// GetAll 返回全部班次
func (s *Service) GetAll(ctx context.Context) ([]*Shift, error) {
	return s.repo.GetAll(ctx)
}

// GetPagination 分页查询，pageIndex 从 0 开始
func (s *Service) GetPagination(ctx context.Context, pageSize, pageIndex int) (*result.OperationResult[Shift], error) {
	return s.repo.GetPagination(ctx, pageSize, pageIndex)
}

// GetPaginationFilter 过滤分页查询
func (s *Service) GetPaginationFilter(ctx context.Context, pageSize, pageIndex int, req *filter.Request) (*result.OperationResult[Shift], error) {
	return s.repo.GetPaginationFilter(ctx, pageSize, pageIndex, req)
}

// Add 新增班次，班次编码不可重复
func (s *Service) Add(ctx context.Context, req *AddRequest) (*result.OperationResult[Shift], error) {
	if req == nil {
		return nil, errors.BadRequest(ReasonValidation, messageValidation)
	}

	existing, err := s.repo.GetByFieldName(ctx, req.ShiftCode, "shift_code")
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fieldError(ReasonValidation, "ShiftCode",
			fmt.Sprintf("Ca làm việc <b>%s</b> đã tồn tại. Vui lòng kiểm tra lại.", req.ShiftCode))
	}

	ent := s.addMapper.ToEntity(req)
	if ent == nil {
		s.log.Errorf("map add request to shift failed: %+v", req)
		return nil, errors.InternalServer(ReasonValidation, result.MessageFailure)
	}

	ent.ShiftID = uuid.New()
	ent.ShiftStatus = StatusActive
	ent.CreatedBy = viewer.UserNameOr(ctx, DefaultOperator)
	ent.CreatedDate = s.now()
	ent.ModifiedBy = nil
	ent.ModifiedDate = nil

	return s.repo.Save(ctx, ent)
}

// Edit 修改班次，保留创建人与创建时间
func (s *Service) Edit(ctx context.Context, id uuid.UUID, req *UpdateRequest) (*result.OperationResult[Shift], error) {
	if req == nil {
		return nil, errors.BadRequest(ReasonValidation, messageValidation)
	}

	sameCode, err := s.repo.GetByFieldName(ctx, req.ShiftCode, "shift_code")
	if err != nil {
		return nil, err
	}
	if sameCode != nil && sameCode.ShiftID != id {
		return nil, fieldError(ReasonValidation, "ShiftCode",
			fmt.Sprintf("Ca làm việc <b>%s</b> đã tồn tại. Vui lòng kiểm tra lại.", req.ShiftCode))
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, notFoundError("ShiftCode",
			fmt.Sprintf("Ca làm việc <b>%s</b> không tồn tại. Vui lòng kiểm tra lại.", req.ShiftCode))
	}

	ent := s.updateMapper.ToEntity(req)
	if ent == nil {
		s.log.Errorf("map update request to shift failed: %+v", req)
		return nil, errors.InternalServer(ReasonValidation, result.MessageFailure)
	}

	operator := viewer.UserNameOr(ctx, DefaultOperator)
	modified := s.now()

	ent.ShiftID = id
	ent.CreatedBy = current.CreatedBy
	ent.CreatedDate = current.CreatedDate
	ent.ModifiedBy = &operator
	ent.ModifiedDate = &modified

	return s.repo.Update(ctx, ent)
}

// Activate 批量启用
func (s *Service) Activate(ctx context.Context, ids []uuid.UUID) (*result.OperationResult[Shift], error) {
	return s.setStatus(ctx, ids, StatusActive)
}

// Deactivate 批量停用
func (s *Service) Deactivate(ctx context.Context, ids []uuid.UUID) (*result.OperationResult[Shift], error) {
	return s.setStatus(ctx, ids, StatusInactive)
}

func (s *Service) setStatus(ctx context.Context, ids []uuid.UUID, status Status) (*result.OperationResult[Shift], error) {
	if len(ids) == 0 {
		return nil, errors.BadRequest(ReasonEmptyIDs, messageEmptyIDs)
	}

	for _, id := range ids {
		ent, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if ent == nil {
			return nil, notFoundError("ShiftCode",
				fmt.Sprintf("Ca làm việc có ID <b>%s</b> không tồn tại. Vui lòng kiểm tra lại.", id))
		}
	}

	return s.repo.UpdateByFieldName(ctx, ids, status, "shift_status")
}

// Delete 批量删除
func (s *Service) Delete(ctx context.Context, ids []uuid.UUID) (*result.OperationResult[Shift], error) {
	return s.repo.DeleteByIds(ctx, ids)
}
