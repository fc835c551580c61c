package cmd

import (
	"log/slog"

	httpadapter "parceltrack/internal/adapters/in/http"
	"parceltrack/internal/adapters/out/bcrypthasher"
	"parceltrack/internal/adapters/out/jwttoken"
	"parceltrack/internal/adapters/out/postgres"
	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	tokens     *jwttoken.Service
	hasher     *bcrypthasher.Hasher
	policy     services.AccessPolicy
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	clock := kernel.SystemClock()

	tokens, err := jwttoken.NewService(jwttoken.Config{
		AccessSecret:  cfg.JWTAccessSecret,
		AccessTTL:     cfg.JWTAccessExpires,
		RefreshSecret: cfg.JWTRefreshSecret,
		RefreshTTL:    cfg.JWTRefreshExpires,
		Issuer:        cfg.JWTIssuer,
	}, clock)
	if err != nil {
		return CompositionRoot{}, err
	}

	hasher, err := bcrypthasher.NewHasher(cfg.BcryptCost)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		tokens:     tokens,
		hasher:     hasher,
		policy:     services.NewAccessPolicy(),
		clock:      clock,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) parcelUoWFactory() commands.ParcelUoWFactory {
	return FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.userUoWFactory(), c.hasher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateSeedSuperAdminCommandHandler() commands.SeedSuperAdminCommandHandler {
	return commands.NewSeedSuperAdminCommandHandler(c.userUoWFactory(), c.hasher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateLoginCommandHandler() commands.LoginCommandHandler {
	return commands.NewLoginCommandHandler(c.userUoWFactory(), c.hasher, c.tokens, c.logger)
}

func (c *CompositionRoot) CreateRefreshTokenCommandHandler() commands.RefreshTokenCommandHandler {
	return commands.NewRefreshTokenCommandHandler(c.userUoWFactory(), c.tokens, c.logger)
}

func (c *CompositionRoot) CreateResetPasswordCommandHandler() commands.ResetPasswordCommandHandler {
	return commands.NewResetPasswordCommandHandler(c.userUoWFactory(), c.hasher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateUpdateUserCommandHandler() commands.UpdateUserCommandHandler {
	return commands.NewUpdateUserCommandHandler(c.userUoWFactory(), c.policy, c.hasher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateParcelCommandHandler(f, c.policy, c.clock)
}

func (c *CompositionRoot) CreateUpdateParcelCommandHandler() commands.UpdateParcelCommandHandler {
	return commands.NewUpdateParcelCommandHandler(c.parcelUoWFactory(), c.policy, c.cfg.StatusLogAttribution, c.clock)
}

func (c *CompositionRoot) CreateCancelParcelCommandHandler() commands.CancelParcelCommandHandler {
	return commands.NewCancelParcelCommandHandler(c.parcelUoWFactory(), c.policy, c.clock)
}

func (c *CompositionRoot) CreateDeleteParcelCommandHandler() commands.DeleteParcelCommandHandler {
	return commands.NewDeleteParcelCommandHandler(c.parcelUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateGetParcelQueryHandler() queries.GetParcelQueryHandler {
	return queries.NewGetParcelQueryHandler(c.gormDB, c.policy)
}

func (c *CompositionRoot) CreateGetStatusLogQueryHandler() queries.GetStatusLogQueryHandler {
	return queries.NewGetStatusLogQueryHandler(c.gormDB, c.policy)
}

func (c *CompositionRoot) CreateListParcelsQueryHandler() queries.ListParcelsQueryHandler {
	return queries.NewListParcelsQueryHandler(c.gormDB, c.policy)
}

func (c *CompositionRoot) CreateListUsersQueryHandler() queries.ListUsersQueryHandler {
	return queries.NewListUsersQueryHandler(c.gormDB, c.policy)
}

func (c *CompositionRoot) CreateCountParcelsByStatusQueryHandler() queries.CountParcelsByStatusQueryHandler {
	return queries.NewCountParcelsByStatusQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every route to its use case.
func (c *CompositionRoot) CreateHTTPServer() (*httpadapter.Server, error) {
	validator, err := httpadapter.NewValidator()
	if err != nil {
		return nil, err
	}

	handlers := httpadapter.Handlers{
		Login:         c.CreateLoginCommandHandler(),
		RefreshToken:  c.CreateRefreshTokenCommandHandler(),
		ResetPassword: c.CreateResetPasswordCommandHandler(),
		RegisterUser:  c.CreateRegisterUserCommandHandler(),
		UpdateUser:    c.CreateUpdateUserCommandHandler(),
		ListUsers:     c.CreateListUsersQueryHandler(),
		CreateParcel:  c.CreateCreateParcelCommandHandler(),
		UpdateParcel:  c.CreateUpdateParcelCommandHandler(),
		CancelParcel:  c.CreateCancelParcelCommandHandler(),
		DeleteParcel:  c.CreateDeleteParcelCommandHandler(),
		GetParcel:     c.CreateGetParcelQueryHandler(),
		GetStatusLog:  c.CreateGetStatusLogQueryHandler(),
		ListParcels:   c.CreateListParcelsQueryHandler(),
	}

	return httpadapter.NewServer(handlers, c.tokens, validator, httpadapter.Config{
		Development:  c.cfg.Development(),
		CookieSecure: c.cfg.CookieSecure,
		AccessTTL:    c.cfg.JWTAccessExpires,
		RefreshTTL:   c.cfg.JWTRefreshExpires,
	}, c.logger), nil
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateCountParcelsByStatusQueryHandler(), c.cfg.StatusReportSchedule, c.logger)
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
