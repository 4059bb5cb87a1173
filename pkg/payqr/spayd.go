package payqr

import "fmt"

// BuildSPAYD genera la carga SPAYD (estándar checo de pago corto):
//
//	SPD*1.0*ACC:{IBAN}+{BIC}*AM:{importe}*CC:{divisa}*MSG:{referencia}*X-VS:{solo dígitos}
//
// Sin BIC, el segmento ACC termina tras el IBAN (sin "+BIC"). X-VS es el
// símbolo variable checo: la referencia con todo carácter no numérico
// eliminado.
func BuildSPAYD(p Params) string {
	acc := cleanIBAN(p.IBAN)
	if p.BIC != "" {
		acc += "+" + p.BIC
	}
	return fmt.Sprintf("SPD*1.0*ACC:%s*AM:%s*CC:%s*MSG:%s*X-VS:%s",
		acc, p.Amount.StringFixed(2), p.Currency, p.Reference, digitsOnly(p.Reference))
}
