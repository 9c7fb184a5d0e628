package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-clinic-api/internal/interface/http"
)

// crud is the route set shared by every clinic resource; all of it needs a session.
type crud interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

func registerCRUD(rg *gin.RouterGroup, path string, auth gin.HandlerFunc, h crud) *gin.RouterGroup {
	g := rg.Group(path, auth)
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return g
}

type DoctorModule struct {
	Handler *handlers.DoctorHandler
	Auth    gin.HandlerFunc
}

func NewDoctorModule(h *handlers.DoctorHandler, auth gin.HandlerFunc) *DoctorModule {
	return &DoctorModule{Handler: h, Auth: auth}
}

func (m *DoctorModule) Register(rg *gin.RouterGroup) {
	registerCRUD(rg, "/medicos", m.Auth, m.Handler)
}

type PatientModule struct {
	Handler *handlers.PatientHandler
	Auth    gin.HandlerFunc
}

func NewPatientModule(h *handlers.PatientHandler, auth gin.HandlerFunc) *PatientModule {
	return &PatientModule{Handler: h, Auth: auth}
}

func (m *PatientModule) Register(rg *gin.RouterGroup) {
	g := registerCRUD(rg, "/pacientes", m.Auth, m.Handler)
	// static segment wins over :id in gin's tree
	g.GET("/buscar", m.Handler.Search)
}

type AppointmentModule struct {
	Handler *handlers.AppointmentHandler
	Auth    gin.HandlerFunc
}

func NewAppointmentModule(h *handlers.AppointmentHandler, auth gin.HandlerFunc) *AppointmentModule {
	return &AppointmentModule{Handler: h, Auth: auth}
}

func (m *AppointmentModule) Register(rg *gin.RouterGroup) {
	registerCRUD(rg, "/turnos", m.Auth, m.Handler)
}
