// Package handler runs the line-oriented command interface: one command per
// input line, tokens separated by spaces, exactly one outcome per command.
package handler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"vaccine-scheduler/internal/model"
	"vaccine-scheduler/internal/scheduler"
)

const banner = `
Welcome to the COVID-19 Vaccine Reservation Scheduling Application!
*** Please enter one of the following commands ***
> create_patient <username> <password>
> create_caregiver <username> <password>
> login_patient <username> <password>
> login_caregiver <username> <password>
> search_caregiver_schedule <date>
> reserve <date> <vaccine>
> upload_availability <date>
> cancel <appointment_id>
> add_doses <vaccine> <number>
> show_appointments
> logout
> quit

`

const prompt = "> "

// shared replies
const (
	msgTryAgain       = "Please try again!"
	msgUnknownCommand = "Invalid operation name!"
	msgLoginFirst     = "Please login first!"
	msgLoginPatient   = "Please login as a patient!"
	msgLoginCaregiver = "Please login as a caregiver first!"
	msgInvalidDate    = "Please enter a valid date!"
	msgBye            = "Bye!"
)

var errInputClosed = errors.New("input closed")

type Handler struct {
	svc  *scheduler.Service
	sess *scheduler.Session
	in   *bufio.Scanner
	out  io.Writer
	log  zerolog.Logger
}

func New(svc *scheduler.Service, in io.Reader, out io.Writer, log zerolog.Logger) *Handler {
	return &Handler{
		svc:  svc,
		sess: scheduler.NewSession(),
		in:   bufio.NewScanner(in),
		out:  out,
		log:  log,
	}
}

// Session is the identity currently logged in through this handler.
func (h *Handler) Session() *scheduler.Session { return h.sess }

// Run prints the banner and serves commands until quit or end of input.
// Command failures never stop the loop.
func (h *Handler) Run(ctx context.Context) error {
	fmt.Fprint(h.out, banner)
	for {
		fmt.Fprint(h.out, prompt)
		line, ok := h.readLine()
		if !ok {
			fmt.Fprintln(h.out)
			return h.in.Err()
		}
		if h.Exec(ctx, line) {
			return nil
		}
	}
}

// Exec runs one command line and reports whether it was quit.
func (h *Handler) Exec(ctx context.Context, line string) bool {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		h.say(msgTryAgain)
		return false
	}
	cmd, args := tokens[0], tokens[1:]

	switch cmd {
	case "create_patient":
		h.createAccount(ctx, model.RolePatient, args)
	case "create_caregiver":
		h.createAccount(ctx, model.RoleCaregiver, args)
	case "login_patient":
		h.login(ctx, model.RolePatient, args)
	case "login_caregiver":
		h.login(ctx, model.RoleCaregiver, args)
	case "logout":
		h.logout(args)
	case "search_caregiver_schedule":
		h.searchSchedule(ctx, args)
	case "reserve":
		h.reserve(ctx, args)
	case "cancel":
		h.cancel(ctx, args)
	case "show_appointments":
		h.showAppointments(ctx, args)
	case "upload_availability":
		h.uploadAvailability(ctx, args)
	case "add_doses":
		h.addDoses(ctx, args)
	case "quit":
		h.say(msgBye)
		return true
	default:
		h.say(msgUnknownCommand)
	}
	return false
}

func (h *Handler) readLine() (string, bool) {
	if !h.in.Scan() {
		return "", false
	}
	return h.in.Text(), true
}

func (h *Handler) say(msg string) {
	fmt.Fprintln(h.out, msg)
}

func (h *Handler) sayf(format string, args ...any) {
	fmt.Fprintf(h.out, format+"\n", args...)
}

// fail reports a storage error: logged in full, generic to the user.
func (h *Handler) fail(cmd string, err error, msg string) {
	h.log.Error().Err(err).Str("cmd", cmd).Str("session", h.sess.ID()).Msg("command failed")
	h.say(msg)
}

// denied explains why the session may not run a command meant for role.
func (h *Handler) denied(err error, role model.Role) {
	switch {
	case role == model.RoleCaregiver:
		h.say(msgLoginCaregiver)
	case errors.Is(err, scheduler.ErrWrongRole):
		h.say(msgLoginPatient)
	default:
		h.say(msgLoginFirst)
	}
}
