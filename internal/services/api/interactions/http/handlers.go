// Package http provides the interaction webhook transport
package http

import (
	"encoding/json"
	stdhttp "net/http"

	"wikicord/internal/core/interaction"
	"wikicord/internal/modkit/httpkit"
	perr "wikicord/internal/platform/errors"
	"wikicord/internal/platform/logger"
	pnet "wikicord/internal/platform/net"
	svc "wikicord/internal/services/api/interactions/service"
)

// Register mounts the webhook route
// the router must already authenticate requests (middleware.Signed)
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	r.Post("/interaction", h.interaction)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /api/interaction Interactions interaction
// @Summary Interaction webhook
// @Tags Interactions
// @Accept json
// @Produce json
// @Param X-Signature-Ed25519 header string true "hex signature of timestamp+body"
// @Param X-Signature-Timestamp header string true "signing timestamp"
// @Success 200 {object} object "interaction response"
// @Failure 400 {string} string "invalid interaction"
// @Failure 401 {string} string "invalid request signature"
// @Router /api/interaction [post]
func (h *handlers) interaction(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ctx := r.Context()
	log := logger.C(ctx)

	body, ok := pnet.RawBody(ctx)
	if !ok {
		log.Error().Msg("interaction route reached without a verified body")
		httpkit.TextError(w, perr.Unauthorizedf("invalid request signature"))
		return
	}

	env, err := interaction.Decode(body)
	if err != nil {
		log.Warn().Err(err).
			Int("bytes", len(body)).
			Str("signed_at", pnet.SignatureTimestamp(ctx)).
			Msg("malformed interaction")
		httpkit.TextError(w, err)
		return
	}

	resp, err := h.svc.Dispatch(ctx, env)
	if err != nil {
		httpkit.TextError(w, err)
		return
	}

	out, err := interaction.EncodeResponse(resp)
	if err != nil {
		log.Error().Err(err).Msg("encode interaction response")
		httpkit.TextError(w, perr.Wrap(err, perr.ErrorCodeUnknown, "unable to encode response"))
		return
	}
	httpkit.JSON(w, stdhttp.StatusOK, json.RawMessage(out))
}
