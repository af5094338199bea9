package pdfgen

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	StampAssetName = "stamp"

	stampSize   = 28.0
	stampPixels = 256
)

// QRStamp encodes content as a PNG QR code placed beside the signature block.
func QRStamp(content string) (*ImageAsset, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, stampPixels)
	if err != nil {
		return nil, fmt.Errorf("encode qr stamp: %w", err)
	}
	return &ImageAsset{
		Name:   StampAssetName,
		Data:   png,
		Format: "PNG",
		Width:  stampPixels,
		Height: stampPixels,
	}, nil
}
