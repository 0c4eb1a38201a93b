package handler

import (
	"context"
	"errors"
	"strconv"

	"vaccine-scheduler/internal/model"
	"vaccine-scheduler/internal/scheduler"
)

func (h *Handler) uploadAvailability(ctx context.Context, args []string) {
	if _, err := h.sess.Require(model.RoleCaregiver); err != nil {
		h.denied(err, model.RoleCaregiver)
		return
	}
	if len(args) != 1 {
		h.say(msgTryAgain)
		return
	}

	_, err := h.svc.UploadAvailability(ctx, h.sess, args[0])
	switch {
	case err == nil:
		h.say("Availability uploaded!")
	case errors.Is(err, scheduler.ErrInvalidDate):
		h.say(msgInvalidDate)
	default:
		h.fail("upload_availability", err, msgTryAgain)
	}
}

func (h *Handler) addDoses(ctx context.Context, args []string) {
	if _, err := h.sess.Require(model.RoleCaregiver); err != nil {
		h.denied(err, model.RoleCaregiver)
		return
	}
	if len(args) != 2 {
		h.say(msgTryAgain)
		return
	}
	doses, err := strconv.Atoi(args[1])
	if err != nil || doses < 0 || doses > model.MaxDoses {
		h.say(msgTryAgain)
		return
	}

	_, err = h.svc.AddDoses(ctx, h.sess, args[0], doses)
	switch {
	case err == nil:
		h.say("Doses updated!")
	case errors.Is(err, scheduler.ErrInvalidDoses):
		h.say(msgTryAgain)
	default:
		h.fail("add_doses", err, msgTryAgain)
	}
}
