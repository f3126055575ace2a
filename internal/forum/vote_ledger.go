package forum

import (
	"context"
	"errors"
	"time"

	"github.com/askhub/askhub/internal/models"
)

// VoteLedger applies a single user's vote intent to a target and keeps the
// target's cached counter in step with the vote set. The vote-row mutation
// and the counter delta always commit as one unit.
type VoteLedger struct {
	store      Store
	dispatcher *NotificationDispatcher
}

func NewVoteLedger(store Store, dispatcher *NotificationDispatcher) *VoteLedger {
	return &VoteLedger{store: store, dispatcher: dispatcher}
}

// CastVote resolves the three-way state machine for (userID, target):
// no standing vote creates one, a standing vote of the same polarity is
// toggled off, a standing vote of the opposite polarity is switched in
// place. The returned value is the target's updated counter.
func (l *VoteLedger) CastVote(ctx context.Context, userID int, target models.Target, polarity models.Polarity) (int, error) {
	owner, err := targetOwner(ctx, l.store, target)
	if err != nil {
		return 0, err
	}

	var count int
	var notify bool
	err = l.store.Tx(ctx, func(s Store) error {
		existing, err := s.Votes().Find(ctx, userID, target)
		switch {
		case errors.Is(err, models.ErrNotFound):
			vote := &models.Vote{
				UserID:    userID,
				Target:    target,
				Polarity:  polarity,
				CreatedAt: time.Now(),
			}
			if err := s.Votes().Insert(ctx, vote); err != nil {
				return err
			}
			notify = true
			count, err = adjustTargetVoteCount(ctx, s, target, polarity.Delta())
			return err
		case err != nil:
			return err
		case existing.Polarity == polarity:
			// Toggle off: undo the original effect.
			if err := s.Votes().Delete(ctx, userID, target); err != nil {
				return err
			}
			count, err = adjustTargetVoteCount(ctx, s, target, -polarity.Delta())
			return err
		default:
			// Switch: the old effect is removed and the new one added,
			// so the delta has magnitude 2.
			if err := s.Votes().UpdatePolarity(ctx, userID, target, polarity); err != nil {
				return err
			}
			notify = true
			count, err = adjustTargetVoteCount(ctx, s, target, 2*polarity.Delta())
			return err
		}
	})
	if err != nil {
		return 0, opFailed(err)
	}

	if notify {
		l.dispatcher.Dispatch(Event{
			Type:    models.NotifVote,
			ActorID: userID,
			OwnerID: owner,
			Target:  target,
		})
	}
	return count, nil
}

// RemoveVote deletes the user's standing vote on the target, undoing its
// effect on the counter. Returns models.ErrNotFound if no vote exists.
func (l *VoteLedger) RemoveVote(ctx context.Context, userID int, target models.Target) (int, error) {
	if _, err := targetOwner(ctx, l.store, target); err != nil {
		return 0, err
	}

	var count int
	err := l.store.Tx(ctx, func(s Store) error {
		existing, err := s.Votes().Find(ctx, userID, target)
		if err != nil {
			return err
		}
		if err := s.Votes().Delete(ctx, userID, target); err != nil {
			return err
		}
		count, err = adjustTargetVoteCount(ctx, s, target, -existing.Polarity.Delta())
		return err
	})
	if err != nil {
		return 0, opFailed(err)
	}
	return count, nil
}

// GetVoteCount recomputes the counter from the vote set itself, bypassing
// the cached column. Used as the correctness oracle.
func (l *VoteLedger) GetVoteCount(ctx context.Context, target models.Target) (int, error) {
	sum, err := l.store.Votes().SumByTarget(ctx, target)
	if err != nil {
		return 0, opFailed(err)
	}
	return sum, nil
}

func adjustTargetVoteCount(ctx context.Context, s Store, t models.Target, delta int) (int, error) {
	switch t.Kind {
	case models.KindQuestion:
		return s.Questions().AdjustVoteCount(ctx, t.ID, delta)
	case models.KindAnswer:
		return s.Answers().AdjustVoteCount(ctx, t.ID, delta)
	}
	return 0, errors.New("unreachable: target validated by caller")
}
