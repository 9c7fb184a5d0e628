package router

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-clinic-api/config"
	"github.com/oksasatya/go-clinic-api/internal/application"
	"github.com/oksasatya/go-clinic-api/internal/container"
	repo "github.com/oksasatya/go-clinic-api/internal/domain/repository"
	"github.com/oksasatya/go-clinic-api/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-clinic-api/internal/infrastructure/postgres"
	"github.com/oksasatya/go-clinic-api/internal/infrastructure/queue"
	"github.com/oksasatya/go-clinic-api/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-clinic-api/internal/interface/http"
	"github.com/oksasatya/go-clinic-api/internal/interface/middleware"
	"github.com/oksasatya/go-clinic-api/internal/router/modules"
	"github.com/oksasatya/go-clinic-api/pkg/helpers"
	"github.com/oksasatya/go-clinic-api/pkg/validation"
)

// Stores groups the four repositories of the Credential Store.
type Stores struct {
	Users        repo.UserRepository
	Doctors      repo.DoctorRepository
	Patients     repo.PatientRepository
	Appointments repo.AppointmentRepository
	// DB is pinged by /health; nil for the in-memory store.
	DB handlers.Pinger
}

// PostgresStores builds the pgx backed repositories.
func PostgresStores(pool *pgxpool.Pool) Stores {
	return Stores{
		Users:        pginfra.NewUserRepository(pool),
		Doctors:      pginfra.NewDoctorRepository(pool),
		Patients:     pginfra.NewPatientRepository(pool),
		Appointments: pginfra.NewAppointmentRepository(pool),
		DB:           pool,
	}
}

// MemoryStores builds repositories over one in-process store.
func MemoryStores(s *memory.Store) Stores {
	return Stores{Users: s.Users(), Doctors: s.Doctors(), Patients: s.Patients(), Appointments: s.Appointments()}
}

// Deps is everything the modules need. Optional infrastructure may be nil.
type Deps struct {
	Config    *config.Config
	Logger    *logrus.Logger
	JWT       *helpers.JWTManager
	Stores    Stores
	Redis     *redis.Client
	Notifier  application.Notifier
	Index     application.PatientIndex
	Validator *validation.Validator
}

// DepsFromContainer collects the process singletons set up by cmd/main.go.
func DepsFromContainer(stores Stores) Deps {
	d := Deps{
		Config:    container.GetConfig(),
		Logger:    container.GetLogger(),
		JWT:       container.GetJWT(),
		Stores:    stores,
		Redis:     container.GetRedis(),
		Validator: validation.New(),
	}
	if pub := container.GetRabbitPub(); pub != nil {
		d.Notifier = queue.NewEmailNotifier(pub, d.Config.AppName)
	}
	if es := container.GetES(); es != nil {
		d.Index = search.NewPatientIndex(es, d.Config.ESPatientsIndex)
	}
	return d
}

// limiter picks the shared Redis counter when available, else the in-process one.
func (d Deps) limiter(max int, window time.Duration) middleware.Limiter {
	if !d.Config.RateLimitEnabled {
		return nil
	}
	if d.Redis != nil {
		return middleware.NewRedisLimiter(d.Redis, max, window)
	}
	return middleware.NewMemoryLimiter(max, window)
}

func (d Deps) allow() middleware.AllowFunc {
	if d.Config.Env == "development" {
		return middleware.AllowPrivateIP()
	}
	return nil
}

// InitModules wires services and handlers and registers every module.
func InitModules(r *Registry, d Deps) {
	if d.Validator == nil {
		d.Validator = validation.New()
	}
	s := d.Stores
	cost := d.Config.BcryptCost

	auth := application.NewAuthService(s.Users, d.JWT, d.Validator, d.Logger, cost)
	users := application.NewUserService(s.Users, d.Validator, d.Notifier, d.Logger, cost)
	doctors := application.NewDoctorService(s.Doctors, s.Appointments, d.Validator)
	patients := application.NewPatientService(s.Patients, s.Appointments, d.Index, d.Validator, d.Logger)
	appointments := application.NewAppointmentService(s.Appointments, s.Patients, s.Doctors, d.Validator)

	bearer := middleware.BearerAuth(d.JWT)

	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(d.Config.AppName, s.DB, d.Logger)))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(auth, d.Logger),
		middleware.RateLimit(d.limiter(10, time.Minute), middleware.KeyByIPAndPath(), d.allow())))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(users, d.Logger), bearer,
		middleware.RateLimit(d.limiter(5, time.Minute), middleware.KeyByIPAndPath(), d.allow())))
	r.Add(modules.NewDoctorModule(handlers.NewDoctorHandler(doctors, d.Logger), bearer))
	r.Add(modules.NewPatientModule(handlers.NewPatientHandler(patients, d.Logger), bearer))
	r.Add(modules.NewAppointmentModule(handlers.NewAppointmentHandler(appointments, d.Logger), bearer))
	if d.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(middleware.RateLimit(d.limiter(120, time.Minute), middleware.KeyByIPAndPath(), nil)))
	}
}
