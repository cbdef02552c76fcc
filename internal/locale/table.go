package locale

// Translation keys referenced from code.
const (
	KeyNotStarted = "NOT_STARTED"
	KeyInProgress = "IN_PROGRESS"
	KeyFinished   = "FINISHED"

	KeyStatusSaved         = "POPUP_STATUS_SAVED"
	KeyStatusCleared       = "POPUP_STATUS_CLEARED"
	KeyStatusEnterBoth     = "POPUP_STATUS_ENTER_BOTH"
	KeyStatusNotConfigured = "POPUP_STATUS_NOT_CONFIGURED"
	KeyStatusConfigured    = "POPUP_STATUS_CONFIGURED"
	KeyLanguageUpdated     = "POPUP_STATUS_LANGUAGE_UPDATED"
	KeyLanguageAuto        = "POPUP_LANGUAGE_AUTO"
)

// MonthKeys and LongMonthKeys are indexed by time.Month-1.
var (
	MonthKeys = [12]string{
		"MONTH_JAN", "MONTH_FEB", "MONTH_MAR", "MONTH_APR", "MONTH_MAY", "MONTH_JUN",
		"MONTH_JUL", "MONTH_AUG", "MONTH_SEP", "MONTH_OCT", "MONTH_NOV", "MONTH_DEC",
	}
	LongMonthKeys = [12]string{
		"MONTH_LONG_JAN", "MONTH_LONG_FEB", "MONTH_LONG_MAR", "MONTH_LONG_APR",
		"MONTH_LONG_MAY", "MONTH_LONG_JUN", "MONTH_LONG_JUL", "MONTH_LONG_AUG",
		"MONTH_LONG_SEP", "MONTH_LONG_OCT", "MONTH_LONG_NOV", "MONTH_LONG_DEC",
	}
)

// NameKeys maps each locale to the key holding its display name.
var NameKeys = [numLocales]string{
	EN: "POPUP_LANGUAGE_ENGLISH",
	ES: "POPUP_LANGUAGE_SPANISH",
}

// Table holds one dictionary per locale. Indexing by Locale keeps the
// mapping total over the enum.
type Table [numLocales]map[string]string

// Lookup returns the translation of key for l, falling back to the EN
// dictionary and then to key itself.
func (t *Table) Lookup(l Locale, key string) string {
	if key == "" {
		return ""
	}
	if !l.valid() {
		l = Default
	}
	if s, ok := t[l][key]; ok && s != "" {
		return s
	}
	if s, ok := t[Default][key]; ok && s != "" {
		return s
	}
	return key
}

// Translate looks key up in the built-in dictionary.
func Translate(l Locale, key string) string {
	return builtin.Lookup(l, key)
}

var builtin = Table{
	EN: {
		"NOT_STARTED": "Not started yet",
		"IN_PROGRESS": "In progress",
		"FINISHED":    "Finished",

		"POPUP_MODIFIER_NO_SECONDS": "remove seconds",
		"POPUP_MODIFIER_24H":        "24-hour format",

		"POPUP_STATUS_SAVED":            "✓ Date & times saved! Placeholders in your slides will now update.",
		"POPUP_STATUS_CLEARED":          "Times cleared.",
		"POPUP_STATUS_ENTER_BOTH":       "Please enter both start and end date/times",
		"POPUP_STATUS_NOT_CONFIGURED":   "💡 Run \"slidetimer session set --start ... --end ...\" to activate session tracking.",
		"POPUP_STATUS_CONFIGURED":       "✓ Session times are configured. Use <<start>>, <<end>>, <<status>> placeholders in your slides.",
		"POPUP_STATUS_LANGUAGE_UPDATED": "✓ Language updated",

		"POPUP_DESC_COUNTDOWN":   "Countdown timer",
		"POPUP_DESC_COUNTUP":     "Countup timer",
		"POPUP_DESC_TIME":        "Current time",
		"POPUP_DESC_DATE":        "Current date",
		"POPUP_DESC_START_END":   "Full date+time",
		"POPUP_DESC_TIME_ONLY":   "Time only",
		"POPUP_DESC_DATE_ONLY":   "Date only",
		"POPUP_DESC_DATE_FULL":   "Full date name",
		"POPUP_DESC_STATUS":      "\"In progress\", \"Finished\", etc.",
		"POPUP_DESC_TRACKING":    "Time tracking",
		"POPUP_LANGUAGE_AUTO":    "Auto (system language)",
		"POPUP_LANGUAGE_ENGLISH": "English",
		"POPUP_LANGUAGE_SPANISH": "Español",

		"MONTH_JAN": "Jan",
		"MONTH_FEB": "Feb",
		"MONTH_MAR": "Mar",
		"MONTH_APR": "Apr",
		"MONTH_MAY": "May",
		"MONTH_JUN": "Jun",
		"MONTH_JUL": "Jul",
		"MONTH_AUG": "Aug",
		"MONTH_SEP": "Sep",
		"MONTH_OCT": "Oct",
		"MONTH_NOV": "Nov",
		"MONTH_DEC": "Dec",

		"MONTH_LONG_JAN": "January",
		"MONTH_LONG_FEB": "February",
		"MONTH_LONG_MAR": "March",
		"MONTH_LONG_APR": "April",
		"MONTH_LONG_MAY": "May",
		"MONTH_LONG_JUN": "June",
		"MONTH_LONG_JUL": "July",
		"MONTH_LONG_AUG": "August",
		"MONTH_LONG_SEP": "September",
		"MONTH_LONG_OCT": "October",
		"MONTH_LONG_NOV": "November",
		"MONTH_LONG_DEC": "December",
	},
	ES: {
		"NOT_STARTED": "Aún no ha comenzado",
		"IN_PROGRESS": "En progreso",
		"FINISHED":    "Finalizado",

		"POPUP_MODIFIER_NO_SECONDS": "sin segundos",
		"POPUP_MODIFIER_24H":        "formato 24 horas",

		"POPUP_STATUS_SAVED":            "✓ ¡Fecha y horas guardadas! Los marcadores en tus diapositivas se actualizarán ahora.",
		"POPUP_STATUS_CLEARED":          "Horas eliminadas.",
		"POPUP_STATUS_ENTER_BOTH":       "Por favor ingresa fecha/hora de inicio y fin",
		"POPUP_STATUS_NOT_CONFIGURED":   "💡 Ejecuta \"slidetimer session set --start ... --end ...\" para activar el seguimiento de sesión.",
		"POPUP_STATUS_CONFIGURED":       "✓ Horas de sesión configuradas. Usa los marcadores <<start>>, <<end>>, <<status>> en tus diapositivas.",
		"POPUP_STATUS_LANGUAGE_UPDATED": "✓ Idioma actualizado",

		"POPUP_DESC_COUNTDOWN":   "Temporizador regresivo",
		"POPUP_DESC_COUNTUP":     "Temporizador progresivo",
		"POPUP_DESC_TIME":        "Hora actual",
		"POPUP_DESC_DATE":        "Fecha actual",
		"POPUP_DESC_START_END":   "Fecha+hora completa",
		"POPUP_DESC_TIME_ONLY":   "Solo hora",
		"POPUP_DESC_DATE_ONLY":   "Solo fecha",
		"POPUP_DESC_DATE_FULL":   "Nombre completo de fecha",
		"POPUP_DESC_STATUS":      "\"En progreso\", \"Finalizado\", etc.",
		"POPUP_DESC_TRACKING":    "Seguimiento de tiempo",
		"POPUP_LANGUAGE_AUTO":    "Automático (idioma del sistema)",
		"POPUP_LANGUAGE_ENGLISH": "English",
		"POPUP_LANGUAGE_SPANISH": "Español",

		"MONTH_JAN": "Ene",
		"MONTH_FEB": "Feb",
		"MONTH_MAR": "Mar",
		"MONTH_APR": "Abr",
		"MONTH_MAY": "May",
		"MONTH_JUN": "Jun",
		"MONTH_JUL": "Jul",
		"MONTH_AUG": "Ago",
		"MONTH_SEP": "Sep",
		"MONTH_OCT": "Oct",
		"MONTH_NOV": "Nov",
		"MONTH_DEC": "Dic",

		"MONTH_LONG_JAN": "Enero",
		"MONTH_LONG_FEB": "Febrero",
		"MONTH_LONG_MAR": "Marzo",
		"MONTH_LONG_APR": "Abril",
		"MONTH_LONG_MAY": "Mayo",
		"MONTH_LONG_JUN": "Junio",
		"MONTH_LONG_JUL": "Julio",
		"MONTH_LONG_AUG": "Agosto",
		"MONTH_LONG_SEP": "Septiembre",
		"MONTH_LONG_OCT": "Octubre",
		"MONTH_LONG_NOV": "Noviembre",
		"MONTH_LONG_DEC": "Diciembre",
	},
}
