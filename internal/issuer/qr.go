package issuer

import (
	"fmt"

	"github.com/kirinyoku/gigledger/internal/domain"
	"github.com/skip2/go-qrcode"
)

const qrSize = 256

// QRPayload is the text a ticket's QR code carries, checked at the door
// against the token owner.
func QRPayload(tok *domain.Token) string {
	return fmt.Sprintf("gigledger:%s:%d:%d:%s", tok.Kind, tok.ID, tok.ConcertID, tok.Owner)
}

// QRCode renders tok's payload as a PNG.
func QRCode(tok *domain.Token) ([]byte, error) {
	const op = "issuer.QRCode"

	png, err := qrcode.Encode(QRPayload(tok), qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return png, nil
}
