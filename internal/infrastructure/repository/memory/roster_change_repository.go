package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/league-portal/internal/domain/rosterchange"
)

type RosterChangeRepository struct {
	view
}

func (r *RosterChangeRepository) Create(_ context.Context, req rosterchange.Request) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid roster change request: %w", err)
	}
	return r.write(func(d *dataset) error {
		if _, exists := d.requests[req.ID]; exists {
			return fmt.Errorf("roster change request %s already exists", req.ID)
		}
		d.requests[req.ID] = cloneRequest(req)
		d.requestOrder = append(d.requestOrder, req.ID)
		return nil
	})
}

func (r *RosterChangeRepository) GetByID(_ context.Context, requestID string) (rosterchange.Request, bool, error) {
	var (
		out rosterchange.Request
		ok  bool
	)
	r.read(func(d *dataset) {
		var stored rosterchange.Request
		stored, ok = d.requests[requestID]
		if ok {
			out = cloneRequest(stored)
		}
	})
	return out, ok, nil
}

func (r *RosterChangeRepository) List(_ context.Context, filter rosterchange.ListFilter) ([]rosterchange.Request, error) {
	var out []rosterchange.Request
	r.read(func(d *dataset) {
		out = make([]rosterchange.Request, 0, len(d.requestOrder))
		for i := len(d.requestOrder) - 1; i >= 0; i-- {
			req := d.requests[d.requestOrder[i]]
			if filter.ClubID != "" && req.ClubID != filter.ClubID {
				continue
			}
			if !filter.Status.Match(req.Status) {
				continue
			}
			out = append(out, cloneRequest(req))
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *RosterChangeRepository) Decide(_ context.Context, requestID string, approved bool, by string, at time.Time) error {
	return r.write(func(d *dataset) error {
		req, ok := d.requests[requestID]
		if !ok {
			return fmt.Errorf("roster change request %s not found", requestID)
		}
		if err := req.Decide(approved, by, at); err != nil {
			return err
		}
		d.requests[requestID] = req
		return nil
	})
}
