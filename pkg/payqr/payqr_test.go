package payqr_test

import (
	"strings"
	"testing"

	"github.com/jhoicas/Facturas-api/pkg/payqr"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eurParams() payqr.Params {
	return payqr.Params{
		IBAN:        "DE89 3704 0044 0532 0130 00",
		BIC:         "COBADEFFXXX",
		CompanyName: "Estudio Vega",
		Currency:    "EUR",
		Amount:      decimal.NewFromInt(1000),
		Reference:   "2024-001",
	}
}

func czkParams() payqr.Params {
	return payqr.Params{
		IBAN:        "CZ65 0800 0000 1920 0014 5399",
		BIC:         "GIBACZPX",
		CompanyName: "Estudio Vega",
		Currency:    "CZK",
		Amount:      decimal.NewFromFloat(2500.50),
		Reference:   "2024-017",
	}
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, payqr.FormatEPC, payqr.FormatFor("EUR"))
	assert.Equal(t, payqr.FormatSPAYD, payqr.FormatFor("CZK"))
	assert.Empty(t, payqr.FormatFor("USD"), "divisa sin formato soportado")
	assert.Empty(t, payqr.FormatFor(""))
}

func TestBuildEPC_TokensFijos(t *testing.T) {
	lines := strings.Split(payqr.BuildEPC(eurParams()), "\n")
	require.Len(t, lines, 9)

	// Cabecera literal del formato BCD.
	assert.Equal(t, "BCD", lines[0])
	assert.Equal(t, "002", lines[1])
	assert.Equal(t, "1", lines[2])
	assert.Equal(t, "SCT", lines[3])
	assert.Equal(t, "COBADEFFXXX", lines[4])
}

func TestBuildEPC_NombreSiempre70(t *testing.T) {
	lines := strings.Split(payqr.BuildEPC(eurParams()), "\n")
	assert.Len(t, []rune(lines[5]), 70, "el nombre se rellena con espacios a 70")
	assert.True(t, strings.HasPrefix(lines[5], "Estudio Vega"))

	// Nombre más largo que 70: se trunca a exactamente 70.
	p := eurParams()
	p.CompanyName = strings.Repeat("Consultores Asociados ", 8)
	lines = strings.Split(payqr.BuildEPC(p), "\n")
	assert.Len(t, []rune(lines[5]), 70)
}

func TestBuildEPC_IBANSinEspacios(t *testing.T) {
	lines := strings.Split(payqr.BuildEPC(eurParams()), "\n")
	assert.Equal(t, "DE89370400440532013000", lines[6])
	assert.NotContains(t, lines[6], " ",
		"el IBAN de la carga nunca lleva espacios, venga como venga")
}

func TestBuildEPC_ImporteYReferencia(t *testing.T) {
	lines := strings.Split(payqr.BuildEPC(eurParams()), "\n")
	assert.Equal(t, "EUR1000.00", lines[7], "importe con divisa y 2 decimales")
	assert.Equal(t, "2024-001", lines[8], "la referencia es el número de factura")
}

func TestBuildEPC_SinBIC(t *testing.T) {
	p := eurParams()
	p.BIC = ""
	lines := strings.Split(payqr.BuildEPC(p), "\n")
	require.Len(t, lines, 9, "sin BIC la carga conserva las 9 líneas")
	assert.Empty(t, lines[4], "la línea del BIC queda vacía")
	assert.Equal(t, "BCD", lines[0])
}

func TestBuildSPAYD(t *testing.T) {
	payload := payqr.BuildSPAYD(czkParams())
	assert.Equal(t,
		"SPD*1.0*ACC:CZ6508000000192000145399+GIBACZPX*AM:2500.50*CC:CZK*MSG:2024-017*X-VS:2024017",
		payload)
}

func TestBuildSPAYD_SinBIC(t *testing.T) {
	p := czkParams()
	p.BIC = ""
	payload := payqr.BuildSPAYD(p)
	assert.Contains(t, payload, "ACC:CZ6508000000192000145399*AM:",
		"sin BIC el segmento ACC termina tras el IBAN")
	assert.NotContains(t, payload, "+")
}

func TestBuildSPAYD_SimboloVariableSoloDigitos(t *testing.T) {
	p := czkParams()
	p.Reference = "FV-2024/0088"
	payload := payqr.BuildSPAYD(p)
	assert.True(t, strings.HasSuffix(payload, "*X-VS:20240088"),
		"X-VS elimina todo carácter no numérico de la referencia")
}

func TestBuild_DespachaPorDivisa(t *testing.T) {
	assert.True(t, strings.HasPrefix(payqr.Build(eurParams()), "BCD\n"))
	assert.True(t, strings.HasPrefix(payqr.Build(czkParams()), "SPD*1.0*"))

	p := eurParams()
	p.Currency = "USD"
	assert.Empty(t, payqr.Build(p), "divisa no soportada no produce carga")
}

func TestDataURL(t *testing.T) {
	url, err := payqr.DataURL(payqr.BuildEPC(eurParams()))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/svg+xml;base64,"))
	assert.Greater(t, len(url), len("data:image/svg+xml;base64,"))
}

func TestDataURL_CargaVacia(t *testing.T) {
	_, err := payqr.DataURL("")
	assert.Error(t, err)
}
