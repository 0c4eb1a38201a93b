package handler

import (
	"context"
	"errors"
	"strconv"

	"vaccine-scheduler/internal/model"
	"vaccine-scheduler/internal/scheduler"
)

func (h *Handler) reserve(ctx context.Context, args []string) {
	if _, err := h.sess.Require(model.RolePatient); err != nil {
		h.denied(err, model.RolePatient)
		return
	}
	if len(args) != 2 {
		h.say(msgTryAgain)
		return
	}

	appt, err := h.svc.Reserve(ctx, h.sess, args[0], args[1])
	switch {
	case err == nil:
		h.sayf("Appointment ID %d, Caregiver username %s", appt.ID, appt.Caregiver)
	case errors.Is(err, scheduler.ErrInvalidDate):
		h.say(msgInvalidDate)
	case errors.Is(err, scheduler.ErrNoAvailability):
		h.say("No caregiver is available!")
	case errors.Is(err, scheduler.ErrNoSuchVaccine):
		h.sayf("Vaccine %s not found!", args[1])
	case errors.Is(err, scheduler.ErrInsufficientDoses):
		h.say("Not enough available doses!")
	default:
		h.fail("reserve", err, msgTryAgain)
	}
}

func (h *Handler) cancel(ctx context.Context, args []string) {
	if !h.sess.LoggedIn() {
		h.say(msgLoginFirst)
		return
	}
	if len(args) != 1 {
		h.say(msgTryAgain)
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		h.say(msgTryAgain)
		return
	}

	_, err = h.svc.Cancel(ctx, h.sess, id)
	switch {
	case err == nil:
		h.sayf("Successfully canceled appointment %d", id)
	case errors.Is(err, scheduler.ErrNoSuchAppointment):
		h.sayf("Appointment %d not found!", id)
	case errors.Is(err, scheduler.ErrNotOwner):
		h.say("You can only cancel your own appointments!")
	default:
		h.fail("cancel", err, msgTryAgain)
	}
}

// showAppointments prints "<id> <vaccine> <date> <other party>" per line.
func (h *Handler) showAppointments(ctx context.Context, args []string) {
	if !h.sess.LoggedIn() {
		h.say(msgLoginFirst)
		return
	}
	if len(args) != 0 {
		h.say(msgTryAgain)
		return
	}

	appts, err := h.svc.ShowAppointments(ctx, h.sess)
	if err != nil {
		h.fail("show_appointments", err, msgTryAgain)
		return
	}
	if len(appts) == 0 {
		h.say("No appointments scheduled.")
		return
	}
	for _, a := range appts {
		other := a.Caregiver
		if h.sess.Role() == model.RoleCaregiver {
			other = a.Patient
		}
		h.sayf("%d %s %s %s", a.ID, a.Vaccine, a.Date.Format(model.DateLayout), other)
	}
}

func (h *Handler) searchSchedule(ctx context.Context, args []string) {
	if !h.sess.LoggedIn() {
		h.say(msgLoginFirst)
		return
	}
	if len(args) != 1 {
		h.say(msgTryAgain)
		return
	}

	sched, err := h.svc.SearchSchedule(ctx, h.sess, args[0])
	switch {
	case errors.Is(err, scheduler.ErrInvalidDate):
		h.say(msgInvalidDate)
		return
	case err != nil:
		h.fail("search_caregiver_schedule", err, msgTryAgain)
		return
	}

	h.say("Caregivers:")
	if len(sched.Caregivers) == 0 {
		h.say("No caregiver is available!")
	}
	for _, c := range sched.Caregivers {
		h.say(c)
	}
	h.say("Vaccines:")
	for _, v := range sched.Vaccines {
		h.sayf("%s %d", v.Name, v.Doses)
	}
}
