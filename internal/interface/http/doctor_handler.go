package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-clinic-api/internal/application"
	"github.com/oksasatya/go-clinic-api/pkg/response"
)

type DoctorHandler struct {
	base
	Svc *application.DoctorService
}

func NewDoctorHandler(svc *application.DoctorService, logger *logrus.Logger) *DoctorHandler {
	return &DoctorHandler{base: base{Logger: logger, entity: "doctor"}, Svc: svc}
}

type doctorRequest struct {
	Name          *string `json:"nombre"`
	Surname       *string `json:"apellido"`
	Specialty     *string `json:"especialidad"`
	LicenseNumber *string `json:"matricula"`
}

func (r doctorRequest) input() application.DoctorInput {
	return application.DoctorInput{Name: r.Name, Surname: r.Surname, Specialty: r.Specialty, LicenseNumber: r.LicenseNumber}
}

func (h *DoctorHandler) List(c *gin.Context) {
	doctors, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	out := make([]doctorDTO, 0, len(doctors))
	for i := range doctors {
		out = append(out, toDoctorDTO(&doctors[i]))
	}
	response.Success(c, http.StatusOK, gin.H{"medicos": out})
}

func (h *DoctorHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	d, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"medico": toDoctorDTO(d)})
}

func (h *DoctorHandler) Create(c *gin.Context) {
	var req doctorRequest
	if !h.bindJSON(c, &req) {
		return
	}
	d, err := h.Svc.Create(c.Request.Context(), req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"message": "doctor created", "medico": toDoctorDTO(d)})
}

func (h *DoctorHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req doctorRequest
	if !h.bindJSON(c, &req) {
		return
	}
	d, err := h.Svc.Update(c.Request.Context(), id, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "doctor updated", "medico": toDoctorDTO(d)})
}

func (h *DoctorHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "doctor deleted"})
}
