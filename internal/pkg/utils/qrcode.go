package utils

import (
	"encoding/base64"
	"fmt"
	"strings"

	"waterhealth-service/internal/pkg/constvars"

	qrcode "github.com/skip2/go-qrcode"
)

func BuildHealthCardPublicURL(publicBaseURL, waterbodyID string) string {
	return fmt.Sprintf(constvars.HealthCardPublicPathFormat, strings.TrimRight(publicBaseURL, "/"), waterbodyID)
}

// GenerateQRCodeDataURL renders content as a PNG QR code wrapped in a data URL.
func GenerateQRCodeDataURL(content string) (string, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, constvars.QRCodeSizeInPixels)
	if err != nil {
		return "", err
	}
	return constvars.QRCodeDataURLPrefix + base64.StdEncoding.EncodeToString(png), nil
}

// DecodeQRCodeDataURL returns the PNG bytes held by a data URL produced by
// GenerateQRCodeDataURL or by the remote service.
func DecodeQRCodeDataURL(dataURL string) ([]byte, error) {
	if !strings.HasPrefix(dataURL, constvars.QRCodeDataURLPrefix) {
		return nil, fmt.Errorf("qr code is not a png data url")
	}
	return base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, constvars.QRCodeDataURLPrefix))
}
