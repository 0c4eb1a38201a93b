package handler

import (
	"context"
	"errors"
	"strings"

	"vaccine-scheduler/internal/model"
	"vaccine-scheduler/internal/scheduler"
)

func (h *Handler) createAccount(ctx context.Context, role model.Role, args []string) {
	if len(args) != 2 {
		h.say(msgTryAgain)
		return
	}
	username, password := args[0], args[1]

	_, err := h.svc.Register(ctx, role, username, password, h.promptPassword)
	switch {
	case err == nil:
		h.sayf("Created user %s", username)
	case errors.Is(err, scheduler.ErrDuplicateUsername):
		h.say("Username taken, try again!")
	case errors.Is(err, errInputClosed):
		h.say("Failed to create user.")
	default:
		h.fail("create_"+string(role), err, "Failed to create user.")
	}
}

// promptPassword lists what is wrong with the last password and reads a
// replacement from the next input line.
func (h *Handler) promptPassword(problems []string) (string, error) {
	for _, p := range problems {
		h.say(p)
	}
	h.say("Please enter new password:")
	line, ok := h.readLine()
	if !ok {
		return "", errInputClosed
	}
	return strings.TrimSpace(line), nil
}

func (h *Handler) login(ctx context.Context, role model.Role, args []string) {
	if h.sess.LoggedIn() {
		h.say("User already logged in.")
		return
	}
	if len(args) != 2 {
		h.say("Login failed.")
		return
	}

	err := h.svc.Login(ctx, h.sess, role, args[0], args[1])
	switch {
	case err == nil:
		h.sayf("Logged in as: %s", args[0])
	case errors.Is(err, scheduler.ErrTooManyAttempts):
		h.say("Too many login attempts, try again later.")
	case errors.Is(err, scheduler.ErrInvalidCredentials):
		h.say("Login failed.")
	default:
		h.fail("login_"+string(role), err, "Login failed.")
	}
}

func (h *Handler) logout(args []string) {
	if !h.sess.LoggedIn() {
		h.say(msgLoginFirst)
		return
	}
	if len(args) != 0 {
		h.say(msgTryAgain)
		return
	}
	if err := h.svc.Logout(h.sess); err != nil {
		h.say(msgLoginFirst)
		return
	}
	h.say("Successfully logged out!")
}
