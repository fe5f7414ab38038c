package pdf

// RGB is a plain color triple for fpdf's Set*Color calls.
type RGB struct {
	R, G, B int
}

// Letterhead carries the institutional identity and fixed texts printed
// on every reprint. It is injected into the renderer so styling never
// lives in the drawing code.
type Letterhead struct {
	ClinicName string
	Address    string
	Phone      string
	LogoPath   string
	Accent     RGB
	// Notes is the fine print block under quotation tables.
	Notes []string
	// TimeZone is the fixed zone for the reprint timestamp.
	TimeZone string
}

// DefaultLetterhead matches the printed layout of the issuing apps.
func DefaultLetterhead() Letterhead {
	return Letterhead{
		ClinicName: "Laboratorio Clínico Integral",
		Address:    "Av. Libertador 1250, Santiago",
		Phone:      "+56 2 2345 6789",
		LogoPath:   "logo.png",
		Accent:     RGB{R: 15, G: 143, B: 238},
		Notes: []string{
			"(*) No considera seguros complementarios.",
			"Horario de toma de muestras: Lun-Vier 08:30 a 11:00.",
			"Validez 30 días desde la fecha original.",
		},
		TimeZone: "America/Santiago",
	}
}
