package viewmodel

import (
	"context"
	"encoding/json"
	"errors"

	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/usecase"
)

const (
	msgTransferred    = "Запись успешно перенесена"
	msgTransferFailed = "Ошибка переноса"
	msgCancelled      = "Запись отменена"
	msgCancelFailed   = "Ошибка отмены записи"
	msgSelectNewSlot  = "Выберите новое время"
)

type TransferView struct {
	Open          bool          `json:"open"`
	AppointmentID int           `json:"appointment_id"`
	Schedule      SlotTableView `json:"schedule"`
}

// transferDialog moves an existing appointment to another free slot of
// the same doctor.
type transferDialog struct {
	page          *base
	appointmentID int
	slots         *slotPicker
	open          bool
}

func newTransferDialog(page *base) *transferDialog {
	return &transferDialog{page: page, slots: newSlotPicker()}
}

// register binds open, paging, transfer and cancel. resolve maps an
// appointment id to its doctor; reload runs after a successful change.
func (t *transferDialog) register(resolve func(appointmentID int) (doctorID int, ok bool), reload func(ctx context.Context)) {
	t.page.on("open_transfer", func(ctx context.Context, payload json.RawMessage) error {
		var in dto.IDPayload
		if err := t.page.decode(payload, &in); err != nil {
			return err
		}
		doctorID, ok := resolve(in.ID)
		if !ok {
			return ErrUnknownElement
		}
		t.appointmentID = in.ID
		t.open = true
		days, _ := t.page.deps.Appointment.GetFreeSlots(ctx, doctorID)
		t.slots.load(days)
		return nil
	})
	t.page.on("transfer", func(ctx context.Context, payload json.RawMessage) error {
		var in dto.SlotPayload
		if err := t.page.decode(payload, &in); err != nil {
			return err
		}
		if !t.open {
			return ErrNothingChosen
		}
		if err := t.slots.choose(in.Label, in.Time); err != nil {
			return err
		}
		sel := t.slots.selected
		err := t.page.deps.Appointment.Transfer(ctx, entity.Transfer{AppointmentID: t.appointmentID, Date: sel.Date, Time: sel.Time})
		switch {
		case err == nil:
			t.page.alert = msgTransferred
			t.close()
			reload(ctx)
		case errors.Is(err, usecase.ErrNoTransferTarget):
			t.page.alert = msgSelectNewSlot
		default:
			t.page.alert = msgTransferFailed
		}
		return nil
	})
	t.page.on("cancel", func(ctx context.Context, payload json.RawMessage) error {
		var in dto.IDPayload
		if err := t.page.decode(payload, &in); err != nil {
			return err
		}
		if _, ok := resolve(in.ID); !ok {
			return ErrUnknownElement
		}
		if err := t.page.deps.Appointment.Cancel(ctx, in.ID); err != nil {
			t.page.alert = msgCancelFailed
			return nil
		}
		t.page.alert = msgCancelled
		reload(ctx)
		return nil
	})
}

func (t *transferDialog) close() {
	t.open = false
	t.appointmentID = 0
	t.slots.reset()
}

func (t *transferDialog) view() TransferView {
	return TransferView{Open: t.open, AppointmentID: t.appointmentID, Schedule: t.slots.view()}
}
