package user

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"plantya-platform/internal/core/apperr"
	"plantya-platform/internal/core/auth"
	"plantya-platform/internal/core/database"
	"plantya-platform/internal/core/events"
	"plantya-platform/internal/domain"
	"plantya-platform/internal/feature/lifecycle"
	"plantya-platform/internal/ids"
	"plantya-platform/internal/query"
	"plantya-platform/internal/repo"
)

const (
	maxNameLen        = 64
	minPasswordLen    = 8
	defaultPassPrefix = "plantya_"
)

var listQuery = query.Resource{
	SearchColumns: []string{"user_id", "email", "name", "role"},
	Sort: query.SortPolicy{
		Fields: map[string]string{
			"userId":    "user_id",
			"email":     "email",
			"name":      "name",
			"role":      "role",
			"createdAt": "created_at",
		},
		DefaultField: "user_id",
		DefaultOrder: query.Asc,
		StrictOrder:  true,
	},
}

type Service struct {
	db       *gorm.DB
	users    *repo.UserRepo
	seq      *repo.SequenceRepo
	lc       *lifecycle.Manager[domain.User]
	validate *validator.Validate
	log      *zap.Logger
}

func NewService(db *gorm.DB, pub events.Publisher, l *zap.Logger) *Service {
	if pub == nil {
		pub = events.Nop{}
	}
	l = l.Named("user")
	users := repo.NewUserRepo(db)
	return &Service{
		db:    db,
		users: users,
		seq:   repo.NewSequenceRepo(db),
		lc: &lifecycle.Manager[domain.User]{
			Resource: "user",
			Repo:     users,
			DB:       db,
			Query:    listQuery,
			Codes: lifecycle.Codes{
				NotFound:         CodeNotFound,
				DeletedNotFound:  CodeDeletedNotFound,
				AlreadyDeleted:   CodeAlreadyDeleted,
				AlreadyActive:    CodeAlreadyActive,
				PatchEmpty:       CodePatchEmpty,
				Duplicate:        CodeEmailExists,
				PagingIncomplete: CodePagingIncomplete,
				PagingInvalid:    CodePagingInvalid,
				OrderInvalid:     CodeOrderInvalid,
			},
			Events: pub,
			Log:    l,
		},
		validate: validator.New(),
		log:      l,
	}
}

func (s *Service) List(ctx context.Context, q ListQuery) (query.Page[Response], error) {
	return s.list(ctx, domain.PartitionActive, q)
}

func (s *Service) ListDeleted(ctx context.Context, q ListQuery) (query.Page[Response], error) {
	return s.list(ctx, domain.PartitionDeleted, q)
}

func (s *Service) list(ctx context.Context, part domain.Partition, q ListQuery) (query.Page[Response], error) {
	var filter func(*query.Spec)
	if strings.TrimSpace(q.Role) != "" {
		role, err := domain.ParseUserRole(q.Role)
		if err != nil {
			return query.Page[Response]{}, apperr.BadRequest(CodeInvalidRole, "role must be one of USER, STAFF, ADMIN")
		}
		filter = func(spec *query.Spec) { spec.Eq("role", role) }
	}
	page, err := s.lc.List(ctx, part, q.Params, filter)
	if err != nil {
		return query.Page[Response]{}, err
	}
	return query.MapPage(page, ToResponse), nil
}

func (s *Service) Get(ctx context.Context, userID string) (Response, error) {
	u, err := s.lc.Get(ctx, userID, domain.PartitionActive)
	if err != nil {
		return Response{}, err
	}
	return ToResponse(*u), nil
}

func (s *Service) GetDeleted(ctx context.Context, userID string) (Response, error) {
	u, err := s.lc.Get(ctx, userID, domain.PartitionDeleted)
	if err != nil {
		return Response{}, err
	}
	return ToResponse(*u), nil
}

// Create 初始密码为 plantya_<userId>
func (s *Service) Create(ctx context.Context, in CreateRequest) (Response, error) {
	email, err := s.checkEmail(in.Email, true)
	if err != nil {
		return Response{}, err
	}
	name, err := checkName(in.Name, true)
	if err != nil {
		return Response{}, err
	}
	if strings.TrimSpace(in.Role) == "" {
		return Response{}, apperr.BadRequest(CodeFieldRequired, "role is required")
	}
	role, err := domain.ParseUserRole(in.Role)
	if err != nil {
		return Response{}, apperr.BadRequest(CodeInvalidRole, "role must be one of USER, STAFF, ADMIN")
	}
	u, err := s.create(ctx, email, name, role, "")
	if err != nil {
		return Response{}, err
	}
	return ToResponse(*u), nil
}

// Register 自助注册只能得到 USER 角色，密码由调用方提供
func (s *Service) Register(ctx context.Context, in RegisterRequest) (Response, error) {
	email, err := s.checkEmail(in.Email, true)
	if err != nil {
		return Response{}, err
	}
	name, err := checkName(in.Name, true)
	if err != nil {
		return Response{}, err
	}
	if in.Password == "" {
		return Response{}, apperr.BadRequest(CodeFieldRequired, "password is required")
	}
	if err := checkPassword(in.Password); err != nil {
		return Response{}, err
	}
	u, err := s.create(ctx, email, name, domain.RoleUser, in.Password)
	if err != nil {
		return Response{}, err
	}
	return ToResponse(*u), nil
}

func (s *Service) create(ctx context.Context, email, name string, role domain.UserRole, password string) (*domain.User, error) {
	var u *domain.User
	err := database.WithinTx(ctx, s.db, func(ctx context.Context) error {
		exists, err := s.users.FindByEmail(ctx, email, domain.PartitionAny)
		if err != nil {
			return err
		}
		if exists != nil {
			return apperr.Conflict(CodeEmailExists, "email is already registered")
		}
		seq, err := s.seq.Next(ctx, repo.SeqUser)
		if err != nil {
			return err
		}
		userID, err := ids.UserID(role, seq)
		if err != nil {
			return err
		}
		if password == "" {
			password = defaultPassPrefix + userID
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}
		u = &domain.User{UserID: userID, Email: email, Name: name, PasswordHash: hash, Role: role}
		err = s.users.Create(ctx, u)
		if errors.Is(err, repo.ErrDuplicate) {
			return apperr.Conflict(CodeEmailExists, "email is already registered")
		}
		return err
	})
	id, at := "", time.Time{}
	if u != nil {
		id, at = u.UserID, u.CreatedAt
	}
	if err = s.lc.Created(ctx, id, at, err); err != nil {
		return nil, err
	}
	return u, nil
}

// Patch 空 payload 先于存在性校验
func (s *Service) Patch(ctx context.Context, userID string, in PatchRequest) (Response, error) {
	if in.Email == nil && in.Name == nil && in.Role == nil && in.Password == nil {
		return Response{}, apperr.BadRequest(CodePatchEmpty, "at least one of email, name, role, password must be provided")
	}
	fields := map[string]any{}
	if in.Email != nil {
		email, err := s.checkEmail(*in.Email, false)
		if err != nil {
			return Response{}, err
		}
		fields["email"] = email
	}
	if in.Name != nil {
		name, err := checkName(*in.Name, false)
		if err != nil {
			return Response{}, err
		}
		fields["name"] = name
	}
	if in.Role != nil {
		role, err := domain.ParseUserRole(*in.Role)
		if err != nil {
			return Response{}, apperr.BadRequest(CodeInvalidRole, "role must be one of USER, STAFF, ADMIN")
		}
		fields["role"] = role
	}
	if in.Password != nil {
		pw := *in.Password
		if err := checkPassword(pw); err != nil {
			return Response{}, err
		}
		hash, err := auth.HashPassword(pw)
		if err != nil {
			return Response{}, apperr.Internal(err)
		}
		fields["password_hash"] = hash
	}
	u, err := s.lc.Patch(ctx, userID, fields)
	if err != nil {
		return Response{}, err
	}
	return ToResponse(*u), nil
}

func (s *Service) Delete(ctx context.Context, userID string) error {
	return s.lc.SoftDelete(ctx, userID, nil)
}

func (s *Service) Restore(ctx context.Context, userID string) (Response, error) {
	u, err := s.lc.Restore(ctx, userID, nil)
	if err != nil {
		return Response{}, err
	}
	return ToResponse(*u), nil
}

// EnsureAdmin 没有任何 active 管理员时创建一个；返回是否新建
func (s *Service) EnsureAdmin(ctx context.Context, email, name, password string) (bool, error) {
	n, err := s.users.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return false, apperr.Internal(err)
	}
	if n > 0 {
		return false, nil
	}
	email, err = s.checkEmail(email, true)
	if err != nil {
		return false, err
	}
	if name, err = checkName(name, true); err != nil {
		return false, err
	}
	if password != "" && utf8.RuneCountInString(password) < minPasswordLen {
		return false, apperr.BadRequest(CodeInvalidPassword, "bootstrap admin password must be at least 8 characters")
	}
	u, err := s.create(ctx, email, name, domain.RoleAdmin, password)
	if err != nil {
		return false, err
	}
	s.log.Info("bootstrap admin created", zap.String("userId", u.UserID), zap.String("email", u.Email))
	return true, nil
}

func (s *Service) checkEmail(raw string, required bool) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" && required {
		return "", apperr.BadRequest(CodeFieldRequired, "email is required")
	}
	if err := s.validate.Var(email, "required,email,max=191"); err != nil {
		return "", apperr.BadRequest(CodeInvalidEmail, "email format is invalid")
	}
	return email, nil
}

func checkName(raw string, required bool) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" && required {
		return "", apperr.BadRequest(CodeFieldRequired, "name is required")
	}
	if name == "" || utf8.RuneCountInString(name) > maxNameLen {
		return "", apperr.BadRequest(CodeInvalidName, "name must be 1 to 64 characters")
	}
	return name, nil
}

func checkPassword(pw string) error {
	if utf8.RuneCountInString(pw) < minPasswordLen || len(pw) > auth.MaxPasswordBytes {
		return apperr.BadRequest(CodeInvalidPassword, "password must be 8 to 72 bytes long")
	}
	return nil
}
