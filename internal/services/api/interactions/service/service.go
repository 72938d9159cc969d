// Package service dispatches decoded interactions to registered commands
package service

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"wikicord/internal/core/interaction"
	perr "wikicord/internal/platform/errors"
	"wikicord/internal/platform/logger"
	"wikicord/internal/platform/metrics"
	"wikicord/internal/services/api/interactions/domain"
)

// Service is the public service port
type Service interface{ domain.ServicePort }

// Fallback answers invocations of unregistered commands
type Fallback func(ctx context.Context, inv interaction.Invocation) (interaction.Response, error)

// Options control dispatcher behavior
type Options struct {
	// Fallback defaults to Echo
	Fallback Fallback
}

// Svc implements the service port
type Svc struct {
	registry *Registry
	fallback Fallback
	now      func() time.Time
}

// New constructs the dispatcher over a fixed registry
func New(reg *Registry, opt Options) *Svc {
	if reg == nil {
		panic("interactions.Service requires a non nil Registry")
	}
	fb := opt.Fallback
	if fb == nil {
		fb = Echo
	}
	return &Svc{registry: reg, fallback: fb, now: time.Now}
}

// Registry returns the command table the service dispatches to
func (s *Svc) Registry() *Registry { return s.registry }

// Dispatch routes env by kind and command name
// Ping never touches a command; Other is rejected as unsupported
func (s *Svc) Dispatch(ctx context.Context, env interaction.Envelope) (resp interaction.Response, err error) {
	meta := env.Metadata()
	kind := meta.Type.String()
	inv, _ := interaction.InvocationOf(env)

	ctx = logger.WithInteraction(ctx, logger.Interaction{
		ID:      meta.ID,
		Kind:    kind,
		Command: inv.Name,
		GuildID: meta.GuildID,
		UserID:  meta.UserID,
	})
	log := logger.C(ctx)

	start := s.now()
	label := s.commandLabel(inv.Name)
	outcome := domain.OutcomeOK
	defer func() {
		if v := recover(); v != nil {
			metrics.PanicsTotal.WithLabelValues("dispatch").Inc()
			log.Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("command panicked")
			resp, err = nil, perr.Wrap(fmt.Errorf("panic: %v", v), perr.ErrorCodePanic, "command failed")
			outcome = domain.OutcomePanic
		}
		metrics.ObserveInteraction(kind, label, outcome, s.now().Sub(start))
	}()

	switch e := env.(type) {
	case interaction.Ping:
		return interaction.Pong{}, nil

	case interaction.Command:
		cmd, ok := s.registry.Lookup(e.Invocation.Name)
		if !ok {
			outcome = domain.OutcomeFallback
			log.Info().Msg("unregistered command, echoing invocation")
			resp, err = s.fallback(ctx, e.Invocation)
		} else {
			resp, err = cmd.Execute(ctx, e.Invocation)
		}

	case interaction.Autocomplete:
		cmd, ok := s.registry.Lookup(e.Invocation.Name)
		if !ok {
			outcome = domain.OutcomeFallback
			resp, err = s.fallback(ctx, e.Invocation)
			break
		}
		choices, serr := cmd.Suggest(ctx, e.Invocation)
		if serr != nil {
			// suggestions are best effort: an empty list keeps the client usable
			outcome = domain.OutcomeSuggestFail
			log.Warn().Err(serr).Msg("suggest failed")
			choices = interaction.Suggest()
		}
		resp = choices

	default:
		outcome = domain.OutcomeUnsupported
		log.Warn().Int("type", int(meta.Type)).Msg("unsupported interaction type")
		return nil, perr.Unsupportedf("invalid interaction type")
	}

	// the caller has already answered with a timeout, the result is dropped
	if cerr := ctx.Err(); cerr != nil {
		outcome = domain.OutcomeTimeout
		log.Warn().Err(cerr).Msg("interaction finished after its deadline")
		return nil, perr.Wrap(cerr, perr.ErrorCodeTimeout, "request timed out")
	}
	if err != nil {
		outcome = domain.OutcomeError
		log.Error().Err(err).Msg("command failed")
		return nil, err
	}
	if resp == nil {
		outcome = domain.OutcomeError
		return nil, perr.Internalf("command returned no response")
	}
	return resp, nil
}

// commandLabel bounds metric cardinality to registered names
func (s *Svc) commandLabel(name string) string {
	if name == "" {
		return "none"
	}
	if _, ok := s.registry.Lookup(name); ok {
		return name
	}
	return "unregistered"
}
