package payqr

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/aaronarduino/goqrsvg"
	svg "github.com/ajstarks/svgo"
	"github.com/boombuler/barcode/qr"
)

// Tamaño de bloque (px por módulo) del SVG generado.
const qrBlockSize = 4

// DataURL codifica la carga útil como QR, la renderiza a SVG y la devuelve
// como data URL base64 ("data:image/svg+xml;base64,...").
func DataURL(payload string) (string, error) {
	if payload == "" {
		return "", fmt.Errorf("carga útil vacía")
	}
	code, err := qr.Encode(payload, qr.M, qr.Auto)
	if err != nil {
		return "", fmt.Errorf("codificar QR: %w", err)
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	qs := goqrsvg.NewQrSVG(code, qrBlockSize)
	qs.StartQrSVG(canvas)
	if err := qs.WriteQrSVG(canvas); err != nil {
		return "", fmt.Errorf("renderizar SVG: %w", err)
	}
	canvas.End()

	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
	return "data:image/svg+xml;base64," + encoded, nil
}
