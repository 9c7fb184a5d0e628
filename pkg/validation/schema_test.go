package validation

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

var doctorSchema = Schema{
	{Field: "nombre", Tags: "required,max=50,personname"},
	{Field: "matricula", Tags: "required,alphanum,max=20"},
	{Field: "fecha", Tags: "omitempty,isodate"},
}

func TestCheckCreateReportsAbsentRequiredFields(t *testing.T) {
	err := New().Check(doctorSchema, Fields{"nombre": "Ana"}, Create)
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if len(verr.Violations) != 1 || verr.Violations[0].Field != "matricula" || verr.Violations[0].Rule != "required" {
		t.Fatalf("unexpected violations: %+v", verr.Violations)
	}
}

func TestCheckUpdateSkipsAbsentFields(t *testing.T) {
	if err := New().Check(doctorSchema, Fields{"nombre": "José Pérez"}, Update); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestCheckRules(t *testing.T) {
	cases := []struct {
		name  string
		field Fields
		bad   string
	}{
		{"digits in name", Fields{"nombre": "Ana2", "matricula": "MN1"}, "nombre"},
		{"name too long", Fields{"nombre": string(make([]byte, 51)), "matricula": "MN1"}, "nombre"},
		{"symbol in license", Fields{"nombre": "Ana", "matricula": "MN-1"}, "matricula"},
		{"bad date", Fields{"nombre": "Ana", "matricula": "MN1", "fecha": "01/02/1990"}, "fecha"},
	}
	v := New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Check(doctorSchema, tc.field, Create)
			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if !verr.Has(tc.bad) {
				t.Fatalf("expected violation on %s, got %+v", tc.bad, verr.Violations)
			}
		})
	}
}

func TestCheckNumericRule(t *testing.T) {
	s := Schema{{Field: "id_paciente", Tags: "required,gt=0"}}
	if err := New().Check(s, Fields{"id_paciente": int64(3)}, Create); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := New().Check(s, Fields{"id_paciente": int64(0)}, Create); err == nil {
		t.Fatal("expected violation for zero id")
	}
}

func TestPasswordAliasRules(t *testing.T) {
	s := Schema{{Field: "contraseña", Tags: "required,pwd"}}
	v := New()
	cases := []struct {
		pw   string
		rule string
	}{
		{"1234567", "pwd"},
		{strings.Repeat("x", 73), "bcryptlen"},
		{strings.Repeat("ñ", 37), "bcryptlen"},
		{strings.Repeat("x", 72), ""},
	}
	for _, tc := range cases {
		err := v.Check(s, Fields{"contraseña": tc.pw}, Create)
		if tc.rule == "" {
			if err != nil {
				t.Fatalf("%d bytes: unexpected %v", len(tc.pw), err)
			}
			continue
		}
		var verr *Error
		if !errors.As(err, &verr) || verr.Violations[0].Rule != tc.rule {
			t.Fatalf("%d bytes: err = %v, want rule %s", len(tc.pw), err, tc.rule)
		}
	}
}

func TestViolationWireShape(t *testing.T) {
	b, err := json.Marshal(Fail("email", "unique", "already registered").Violations[0])
	if err != nil {
		t.Fatal(err)
	}
	want := `{"path":"email","rule":"unique","msg":"already registered"}`
	if string(b) != want {
		t.Fatalf("got %s want %s", b, want)
	}
}

func TestFromBindErrorInvalidJSON(t *testing.T) {
	var v map[string]any
	err := json.Unmarshal([]byte("{"), &v)
	verr := FromBindError(err)
	if !verr.Has("payload") {
		t.Fatalf("expected payload violation, got %+v", verr.Violations)
	}
}
