package service

import (
	"bytes"
	"context"
	"encoding/json"

	"wikicord/internal/core/interaction"
)

const (
	fenceOpen  = "```json\n"
	fenceClose = "\n```"
)

// Echo answers with a fenced JSON dump of the invocation so operators can see what arrived
// the dump is cut so the whole message stays within the content limit
func Echo(_ context.Context, inv interaction.Invocation) (interaction.Response, error) {
	raw, err := interaction.EncodeInvocation(inv)
	if err != nil {
		return nil, err
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err == nil {
		raw = pretty.Bytes()
	}
	body := interaction.Truncate(string(raw), interaction.MaxContent-len(fenceOpen)-len(fenceClose))
	return interaction.Text(fenceOpen+body+fenceClose, false), nil
}
