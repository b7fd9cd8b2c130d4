package orders

import (
	"fmt"

	"github.com/speps/go-hashids/v2"
)

const referenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// ReferenceEncoder turns order ids into the short code shown in notifications
// ("Your order (#K7Q2MX) ...") without exposing the sequential id.
type ReferenceEncoder struct {
	h *hashids.HashID
}

func NewReferenceEncoder(salt string) (*ReferenceEncoder, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = 6
	hd.Alphabet = referenceAlphabet

	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, fmt.Errorf("order reference encoder: %w", err)
	}
	return &ReferenceEncoder{h: h}, nil
}

func (e *ReferenceEncoder) Encode(orderID int64) string {
	ref, err := e.h.EncodeInt64([]int64{orderID})
	if err != nil {
		return fmt.Sprintf("%06d", orderID)
	}
	return ref
}

func (e *ReferenceEncoder) Decode(ref string) (int64, error) {
	ids, err := e.h.DecodeInt64WithError(ref)
	if err != nil {
		return 0, err
	}
	if len(ids) != 1 {
		return 0, fmt.Errorf("order reference %q: expected one id, got %d", ref, len(ids))
	}
	return ids[0], nil
}
