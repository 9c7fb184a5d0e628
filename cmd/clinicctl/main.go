package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-clinic-api/pkg/client"
)

const usage = `usage: clinicctl <command> [args]

commands:
  login <email>                   prompts for the password on stdin
  logout
  whoami
  register <nombre> <email>       prompts for the password on stdin
  list <usuarios|medicos|pacientes|turnos>
  buscar <texto>                  search patients
  delete <medicos|pacientes|turnos|usuarios> <id>
  estado <id-turno> <pending|attended|cancelled>
`

func main() {
	_ = godotenv.Load()

	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	timeout := flag.Duration("timeout", 15*time.Second, "request timeout")
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	c, err := newClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	if err := c.Restore(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "warning: could not restore session:", err)
	}

	if err := run(ctx, c, flag.Args(), os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, client.ErrSessionExpired) {
			fmt.Fprintln(os.Stderr, "session expired, run: clinicctl login <email>")
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func newClient() (*client.Client, error) {
	base := os.Getenv("CLINIC_API_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	path := os.Getenv("CLINIC_SESSION_FILE")
	if path == "" {
		p, err := client.DefaultSessionPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return client.New(base,
		client.WithStore(client.NewFileStore(path)),
		client.WithInterceptors(client.InvalidateOn401),
	), nil
}

func run(ctx context.Context, c *client.Client, args []string, in io.Reader, out io.Writer) error {
	cmd, args := args[0], args[1:]
	switch cmd {
	case "login":
		if len(args) != 1 {
			return errors.New("usage: login <email>")
		}
		pw, err := readPassword(in, out)
		if err != nil {
			return err
		}
		s, err := c.Login(ctx, args[0], pw)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "logged in as %s\n", s.Username)
	case "logout":
		return c.Logout()
	case "whoami":
		s, ok := c.Session()
		if !ok {
			return client.ErrSessionExpired
		}
		fmt.Fprintln(out, s.Username)
	case "register":
		if len(args) != 2 {
			return errors.New("usage: register <nombre> <email>")
		}
		pw, err := readPassword(in, out)
		if err != nil {
			return err
		}
		u, err := c.Register(ctx, args[0], args[1], pw)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "created user %d (%s)\n", u.ID, u.Email)
	case "list":
		if len(args) != 1 {
			return errors.New("usage: list <resource>")
		}
		return list(ctx, c, args[0], out)
	case "buscar":
		if len(args) == 0 {
			return errors.New("usage: buscar <texto>")
		}
		ps, err := c.SearchPatients(ctx, strings.Join(args, " "), 0)
		if err != nil {
			return err
		}
		printPatients(out, ps)
	case "delete":
		if len(args) != 2 {
			return errors.New("usage: delete <resource> <id>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := remove(ctx, c, args[0], id); err != nil {
			return err
		}
		fmt.Fprintln(out, "deleted")
	case "estado":
		if len(args) != 2 {
			return errors.New("usage: estado <id-turno> <estado>")
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		a, err := c.SetAppointmentStatus(ctx, id, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "turno %d: %s\n", a.ID, a.Estado)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func list(ctx context.Context, c *client.Client, resource string, out io.Writer) error {
	switch resource {
	case "usuarios":
		us, err := c.Users().List(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNOMBRE\tEMAIL")
		for _, u := range us {
			fmt.Fprintf(w, "%d\t%s\t%s\n", u.ID, u.Nombre, u.Email)
		}
		return w.Flush()
	case "medicos":
		ds, err := c.Doctors().List(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNOMBRE\tAPELLIDO\tESPECIALIDAD\tMATRICULA")
		for _, d := range ds {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", d.ID, d.Nombre, d.Apellido, d.Especialidad, d.Matricula)
		}
		return w.Flush()
	case "pacientes":
		ps, err := c.Patients().List(ctx)
		if err != nil {
			return err
		}
		printPatients(out, ps)
	case "turnos":
		as, err := c.Appointments().List(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tFECHA\tHORA\tPACIENTE\tMEDICO\tESTADO")
		for _, a := range as {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s %s\t%s %s\t%s\n", a.ID, a.Fecha, a.Hora,
				a.PacienteNombre, a.PacienteApellido, a.MedicoNombre, a.MedicoApellido, a.Estado)
		}
		return w.Flush()
	default:
		return fmt.Errorf("unknown resource %q", resource)
	}
	return nil
}

func printPatients(out io.Writer, ps []client.Patient) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOMBRE\tAPELLIDO\tDNI\tNACIMIENTO\tOBRA SOCIAL")
	for _, p := range ps {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", p.ID, p.Nombre, p.Apellido, p.DNI, p.FechaNacimiento, p.ObraSocial)
	}
	_ = w.Flush()
}

func remove(ctx context.Context, c *client.Client, resource string, id int64) error {
	switch resource {
	case "usuarios":
		return c.Users().Delete(ctx, id)
	case "medicos":
		return c.Doctors().Delete(ctx, id)
	case "pacientes":
		return c.Patients().Delete(ctx, id)
	case "turnos":
		return c.Appointments().Delete(ctx, id)
	}
	return fmt.Errorf("unknown resource %q", resource)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func readPassword(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "password: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
