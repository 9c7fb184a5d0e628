package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/oksasatya/go-clinic-api/pkg/helpers"
	"github.com/oksasatya/go-clinic-api/pkg/validation"
)

func TestRegisterHashesPasswordAndNotifies(t *testing.T) {
	f := newFixture(t)
	u, err := f.users.Register(context.Background(), UserInput{Name: ptr("José"), Email: ptr("jose@example.com"), Password: ptr("secreto123")})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Password == "secreto123" || !helpers.CompareHashAndPassword(u.Password, "secreto123") {
		t.Fatal("password must be stored as a bcrypt hash")
	}
	if len(f.notified) != 1 || f.notified[0].Email != "jose@example.com" {
		t.Fatalf("notified = %+v", f.notified)
	}
}

func TestRegisterRejects(t *testing.T) {
	cases := []struct {
		name  string
		in    UserInput
		field string
	}{
		{"short password", UserInput{Name: ptr("Ana"), Email: ptr("ana@example.com"), Password: ptr("1234567")}, "contraseña"},
		{"digits in name", UserInput{Name: ptr("Ana 2"), Email: ptr("ana@example.com"), Password: ptr("12345678")}, "nombre"},
		{"bad email", UserInput{Name: ptr("Ana"), Email: ptr("ana"), Password: ptr("12345678")}, "email"},
		{"password over 72 bytes", UserInput{Name: ptr("Ana"), Email: ptr("ana@example.com"), Password: ptr(strings.Repeat("a", 73))}, "contraseña"},
		{"multibyte password over 72 bytes", UserInput{Name: ptr("Ana"), Email: ptr("ana@example.com"), Password: ptr(strings.Repeat("ñ", 37))}, "contraseña"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.users.Register(context.Background(), tc.in)
			var verr *validation.Error
			if !errors.As(err, &verr) || !verr.Has(tc.field) {
				t.Fatalf("err = %v, want violation on %s", err, tc.field)
			}
			users, _ := f.users.List(context.Background())
			if len(users) != 0 {
				t.Fatalf("stored %d users", len(users))
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	in := UserInput{Name: ptr("Ana"), Email: ptr("ana@example.com"), Password: ptr("12345678")}
	if _, err := f.users.Register(ctx, in); err != nil {
		t.Fatal(err)
	}
	_, err := f.users.Register(ctx, in)
	var verr *validation.Error
	if !errors.As(err, &verr) || !verr.Has("email") {
		t.Fatalf("err = %v, want email violation", err)
	}
}

func TestUpdateUserOnlySuppliedFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, err := f.users.Register(ctx, UserInput{Name: ptr("Ana"), Email: ptr("ana@example.com"), Password: ptr("12345678")})
	if err != nil {
		t.Fatal(err)
	}
	got, err := f.users.Update(ctx, u.ID, UserInput{Name: ptr("Ana María")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != "Ana María" || got.Email != "ana@example.com" || got.Password != u.Password {
		t.Fatalf("unexpected user after update: %+v", got)
	}
	if _, err := f.users.Update(ctx, 999, UserInput{Name: ptr("X")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateRejectsPasswordOverBcryptLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, err := f.users.Register(ctx, UserInput{Name: ptr("Ana"), Email: ptr("ana@example.com"), Password: ptr(strings.Repeat("a", 72))})
	if err != nil {
		t.Fatalf("72 byte password must be accepted: %v", err)
	}
	_, err = f.users.Update(ctx, u.ID, UserInput{Password: ptr(strings.Repeat("a", 73))})
	var verr *validation.Error
	if !errors.As(err, &verr) || !verr.Has("contraseña") || verr.Violations[0].Rule != "bcryptlen" {
		t.Fatalf("err = %v, want bcryptlen violation on contraseña", err)
	}
}
