// Package search keeps an Elasticsearch index of patients for free text lookups.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-clinic-api/internal/domain/entity"
	"github.com/oksasatya/go-clinic-api/pkg/helpers"
)

const requestTimeout = 3 * time.Second

type PatientIndex struct {
	ES *elasticsearch.Client
	// Name is the Elasticsearch index holding the patient documents.
	Name string
}

func NewPatientIndex(es *elasticsearch.Client, index string) *PatientIndex {
	return &PatientIndex{ES: es, Name: index}
}

type patientDoc struct {
	ID                int64  `json:"id_paciente"`
	Name              string `json:"nombre"`
	Surname           string `json:"apellido"`
	NationalID        string `json:"dni"`
	BirthDate         string `json:"fecha_nacimiento"`
	InsuranceProvider string `json:"obra_social"`
}

func (ix *PatientIndex) Index(ctx context.Context, p entity.Patient) error {
	b, err := json.Marshal(patientDoc{
		ID:                p.ID,
		Name:              p.Name,
		Surname:           p.Surname,
		NationalID:        p.NationalID,
		BirthDate:         p.BirthDate,
		InsuranceProvider: p.InsuranceProvider,
	})
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      ix.Name,
		DocumentID: strconv.FormatInt(p.ID, 10),
		Body:       bytes.NewReader(b),
		Refresh:    "false",
	}
	return ix.do(ctx, "index", req)
}

func (ix *PatientIndex) Remove(ctx context.Context, id int64) error {
	req := esapi.DeleteRequest{Index: ix.Name, DocumentID: strconv.FormatInt(id, 10)}
	err := ix.do(ctx, "delete", req)
	var se *helpers.ESStatusError
	if errors.As(err, &se) && se.Status == http.StatusNotFound {
		return nil
	}
	return err
}

// Search runs a multi_match over the name fields, national id and insurance provider.
func (ix *PatientIndex) Search(ctx context.Context, q string, limit int) ([]entity.Patient, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"apellido^2", "nombre^2", "dni", "obra_social"},
				"fuzziness": "AUTO",
			},
		},
		"size": limit,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := ix.ES.Search(
		ix.ES.Search.WithContext(c),
		ix.ES.Search.WithIndex(ix.Name),
		ix.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, &helpers.ESStatusError{Op: "search", Status: res.StatusCode}
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source patientDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	out := make([]entity.Patient, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		d := h.Source
		out = append(out, entity.Patient{
			ID:                d.ID,
			Name:              d.Name,
			Surname:           d.Surname,
			NationalID:        d.NationalID,
			BirthDate:         d.BirthDate,
			InsuranceProvider: d.InsuranceProvider,
		})
	}
	return out, nil
}

type requester interface {
	Do(ctx context.Context, transport esapi.Transport) (*esapi.Response, error)
}

func (ix *PatientIndex) do(ctx context.Context, op string, req requester) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, ix.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return &helpers.ESStatusError{Op: op, Status: res.StatusCode}
	}
	return nil
}
