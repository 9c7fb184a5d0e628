package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/oksasatya/go-clinic-api/pkg/client"
)

func TestRunLoginWhoamiEstado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/login":
			_, _ = w.Write([]byte(`{"success":true,"token":"tok","username":"ana@example.com"}`))
		case "/turnos/3":
			_, _ = w.Write([]byte(`{"success":true,"turno":{"id_turno":3,"estado":"cancelled"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := client.New(srv.URL, client.WithInterceptors(client.InvalidateOn401))
	ctx := context.Background()
	var out bytes.Buffer

	if err := run(ctx, c, []string{"login", "ana@example.com"}, strings.NewReader("12345678\n"), &out); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := run(ctx, c, []string{"whoami"}, nil, &out); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != "ana@example.com" {
		t.Fatalf("whoami = %q", out.String())
	}
	out.Reset()
	if err := run(ctx, c, []string{"estado", "3", "cancelled"}, nil, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "turno 3: cancelled") {
		t.Fatalf("estado output = %q", out.String())
	}

	if err := run(ctx, c, []string{"logout"}, nil, &out); err != nil {
		t.Fatal(err)
	}
	if err := run(ctx, c, []string{"whoami"}, nil, &out); !errors.Is(err, client.ErrSessionExpired) {
		t.Fatalf("whoami after logout err = %v", err)
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	c := client.New("http://unused")
	cases := [][]string{
		{"delete", "medicos", "abc"},
		{"list", "recetas"},
		{"frobnicate"},
		{"estado", "1"},
	}
	for _, args := range cases {
		t.Run(strings.Join(args, "_"), func(t *testing.T) {
			if err := run(context.Background(), c, args, nil, &bytes.Buffer{}); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
