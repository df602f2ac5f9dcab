// internal/fieldmap/labels.go
package fieldmap

// Label tables for the seller-details block. All entries are lowercase and
// NFKC-normalized; matching is case-insensitive substring against the
// normalized raw label. The storefronts render the same block in more than
// a dozen languages with labels in varying order, so the tables carry the
// spellings observed across them rather than attempting full translation.

// addressLabels start a multi-line value: following lines belong to the
// address until the next labelled line or the trailing disclaimer sentence.
var addressLabels = []string{
	"business address",
	"customer services address",
	"customer service address",
	"geschäftsadresse",
	"kundenservice-adresse",
	"adresse",
	"dirección comercial",
	"indirizzo commerciale",
	"adres firmy",
	"iş adresi",
	"事業所の住所",
}

// Per-field label sets for the reduction pass.
var (
	businessNameLabels = []string{
		"business name", "firmenname", "nombre comercial", "ragione sociale",
		"nazwa firmy", "şirket adı",
	}
	businessTypeLabels = []string{
		"business type", "unternehmenstyp", "tipo de empresa", "tipo di attività",
	}
	tradeRegisterLabels = []string{
		"trade register", "handelsregister", "registro mercantil",
		"registro delle imprese", "ticaret sicil",
	}
	vatLabels = []string{
		"vat", "ust", "iva", "nip", "kdv", "btw", "moms",
	}
	phoneLabels = []string{
		"phone", "telefon", "teléfono", "telefono", "電話",
	}
	emailLabels = []string{
		"email", "e-mail", "メール",
	}
	businessAddressLabels = []string{
		"business address", "geschäftsadresse", "dirección comercial",
		"indirizzo commerciale", "adres firmy", "iş adresi", "事業所の住所",
	}
	customerServiceLabels = []string{
		"customer service", "kundenservice",
	}
)

// disclaimerPrefixes mark the boilerplate sentence that trails the details
// block; address continuation must stop before it.
var disclaimerPrefixes = []string{
	"this seller",
}
