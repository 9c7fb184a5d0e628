package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-clinic-api/internal/application"
	"github.com/oksasatya/go-clinic-api/internal/domain/entity"
	"github.com/oksasatya/go-clinic-api/pkg/response"
	"github.com/oksasatya/go-clinic-api/pkg/validation"
)

type PatientHandler struct {
	base
	Svc *application.PatientService
}

func NewPatientHandler(svc *application.PatientService, logger *logrus.Logger) *PatientHandler {
	return &PatientHandler{base: base{Logger: logger, entity: "patient"}, Svc: svc}
}

type patientRequest struct {
	Name              *string `json:"nombre"`
	Surname           *string `json:"apellido"`
	NationalID        *string `json:"dni"`
	BirthDate         *string `json:"fecha_nacimiento"`
	InsuranceProvider *string `json:"obra_social"`
}

func (r patientRequest) input() application.PatientInput {
	return application.PatientInput{
		Name:              r.Name,
		Surname:           r.Surname,
		NationalID:        r.NationalID,
		BirthDate:         r.BirthDate,
		InsuranceProvider: r.InsuranceProvider,
	}
}

type searchQuery struct {
	Q     string `form:"q" binding:"required,max=100"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=50"`
}

func patientList(ps []entity.Patient) []patientDTO {
	out := make([]patientDTO, 0, len(ps))
	for i := range ps {
		out = append(out, toPatientDTO(&ps[i]))
	}
	return out
}

func (h *PatientHandler) List(c *gin.Context) {
	patients, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"pacientes": patientList(patients)})
}

// Search answers GET /pacientes/buscar?q=...&limit=...
func (h *PatientHandler) Search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Invalid(c, validation.FromBindError(err))
		return
	}
	patients, err := h.Svc.Search(c.Request.Context(), q.Q, q.Limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"pacientes": patientList(patients)})
}

func (h *PatientHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	p, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"paciente": toPatientDTO(p)})
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req patientRequest
	if !h.bindJSON(c, &req) {
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"message": "patient created", "paciente": toPatientDTO(p)})
}

func (h *PatientHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req patientRequest
	if !h.bindJSON(c, &req) {
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), id, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "patient updated", "paciente": toPatientDTO(p)})
}

func (h *PatientHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "patient deleted"})
}
