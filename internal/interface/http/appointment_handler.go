package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-clinic-api/internal/application"
	"github.com/oksasatya/go-clinic-api/pkg/response"
)

type AppointmentHandler struct {
	base
	Svc *application.AppointmentService
}

func NewAppointmentHandler(svc *application.AppointmentService, logger *logrus.Logger) *AppointmentHandler {
	return &AppointmentHandler{base: base{Logger: logger, entity: "appointment"}, Svc: svc}
}

type appointmentRequest struct {
	PatientID *flexInt `json:"id_paciente"`
	DoctorID  *flexInt `json:"id_medico"`
	Date      *string  `json:"fecha"`
	Time      *string  `json:"hora"`
	Status    *string  `json:"estado"`
	Notes     *string  `json:"observaciones"`
}

// appointmentUpdateRequest ignores every other key a client may send.
type appointmentUpdateRequest struct {
	Status *string `json:"estado"`
	Notes  *string `json:"observaciones"`
}

func (h *AppointmentHandler) List(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	out := make([]appointmentDTO, 0, len(list))
	for i := range list {
		out = append(out, toAppointmentDetailDTO(&list[i]))
	}
	response.Success(c, http.StatusOK, gin.H{"turnos": out})
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	a, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"turno": toAppointmentDTO(a)})
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req appointmentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	a, err := h.Svc.Create(c.Request.Context(), application.AppointmentInput{
		PatientID: req.PatientID.int64Ptr(),
		DoctorID:  req.DoctorID.int64Ptr(),
		Date:      req.Date,
		Time:      req.Time,
		Status:    req.Status,
		Notes:     req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"message": "appointment created", "turno": toAppointmentDTO(a)})
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appointmentUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}
	a, err := h.Svc.Update(c.Request.Context(), id, application.AppointmentUpdateInput{Status: req.Status, Notes: req.Notes})
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "appointment updated", "turno": toAppointmentDTO(a)})
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "appointment deleted"})
}
