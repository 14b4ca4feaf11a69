package render

// FlashStyle describes how a flash kind is presented: the alert CSS
// class, the FontAwesome icon, and the French heading shown above the
// message.
type FlashStyle struct {
	AlertClass string
	Icon       string
	Title      string
}

var flashStyles = map[string]FlashStyle{
	"success": {AlertClass: "alert-success", Icon: "fa-check-circle", Title: "Succès"},
	"error":   {AlertClass: "alert-danger", Icon: "fa-exclamation-circle", Title: "Erreur"},
	"warning": {AlertClass: "alert-warning", Icon: "fa-exclamation-triangle", Title: "Attention"},
	"info":    {AlertClass: "alert-info", Icon: "fa-info-circle", Title: "Information"},
}

// StyleFor maps a flash kind to its presentation. Unknown kinds fall
// back to the info style so a typo never renders an unstyled alert.
func StyleFor(kind string) FlashStyle {
	if s, ok := flashStyles[kind]; ok {
		return s
	}
	return flashStyles["info"]
}
