package contextmenu

import (
	"crypto/rand"
	"io"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/odvcencio/furry-menu/runtime"
)

// menuEmitter sends hide and show requests to the controller.
type menuEmitter struct {
	controller Controller
	menuID     string
	ref        runtime.Widget
	entropy    io.Reader
	now        func() time.Time
	logger     *zap.Logger
}

func newMenuEmitter(controller Controller, menuID string, ref runtime.Widget, logger *zap.Logger) *menuEmitter {
	return &menuEmitter{
		controller: controller,
		menuID:     menuID,
		ref:        ref,
		entropy:    ulid.Monotonic(rand.Reader, 0),
		now:        time.Now,
		logger:     logger,
	}
}

func (e *menuEmitter) hide() {
	e.controller.HideMenu()
}

func (e *menuEmitter) show(pos Position, payload Payload) ShowRequest {
	req := ShowRequest{
		ID:       ulid.MustNew(ulid.Timestamp(e.now()), e.entropy),
		Position: pos,
		Target:   e.ref,
		MenuID:   e.menuID,
		Payload:  payload,
	}
	e.controller.ShowMenu(req)
	e.logger.Info("menu requested",
		zap.String("menu", e.menuID),
		zap.Stringer("request", req.ID),
		zap.Int("x", pos.X),
		zap.Int("y", pos.Y),
	)
	return req
}
