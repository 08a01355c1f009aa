package table

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/palemoky/go-fish/internal/apperrors"
	"github.com/palemoky/go-fish/internal/game/hand"
	"github.com/palemoky/go-fish/internal/protocol"
)

// Apply decodes one feed event and runs the matching table operation.
func (t *Table) Apply(msg *protocol.Message) error {
	if msg == nil {
		return fmt.Errorf("%w: nil message", apperrors.ErrInvalidMsg)
	}

	err := t.dispatch(msg)
	if err != nil {
		t.log.WithFields(logrus.Fields{
			"type":  msg.Type,
			"error": err,
		}).Warn("Failed to apply event")
	}
	return err
}

func (t *Table) dispatch(msg *protocol.Message) error {
	switch msg.Type {
	case protocol.MsgDeal:
		p, err := parse[protocol.DealPayload](msg)
		if err != nil {
			return err
		}
		return t.Deal(p.PlayerID, p.Cards)

	case protocol.MsgDealHidden:
		p, err := parse[protocol.DealHiddenPayload](msg)
		if err != nil {
			return err
		}
		return t.DealHidden(p.PlayerID, p.Count)

	case protocol.MsgTransfer:
		p, err := parse[protocol.TransferPayload](msg)
		if err != nil {
			return err
		}
		res, err := hand.ParseResolution(p.Resolution)
		if err != nil {
			return err
		}
		_, err = t.Transfer(p.From, p.To, p.Cards, res)
		return err

	case protocol.MsgBook:
		p, err := parse[protocol.BookPayload](msg)
		if err != nil {
			return err
		}
		_, err = t.ExtractBook(p.PlayerID, p.Rank)
		return err

	case protocol.MsgAssign:
		p, err := parse[protocol.AssignPayload](msg)
		if err != nil {
			return err
		}
		return t.Assign(p.PlayerID, p.Cards)

	case protocol.MsgReveal:
		p, err := parse[protocol.PlayerPayload](msg)
		if err != nil {
			return err
		}
		return t.Reveal(p.PlayerID)

	case protocol.MsgHide:
		p, err := parse[protocol.PlayerPayload](msg)
		if err != nil {
			return err
		}
		return t.Hide(p.PlayerID)

	case protocol.MsgSnapshot:
		p, err := parse[protocol.TableSnapshot](msg)
		if err != nil {
			return err
		}
		return t.Restore(*p)

	default:
		return fmt.Errorf("%w: unsupported type %q", apperrors.ErrInvalidMsg, msg.Type)
	}
}

func parse[T any](msg *protocol.Message) (*T, error) {
	p, err := protocol.ParsePayload[T](msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrInvalidMsg, msg.Type, err)
	}
	return p, nil
}
