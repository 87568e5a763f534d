package domain

import "errors"

// Domain errors.
var (
	ErrEventUnavailable     = errors.New("événement indisponible")
	ErrEventFull            = errors.New("nombre maximal de participants atteint")
	ErrEventPast            = errors.New("l'événement est déjà terminé")
	ErrEmailRequired        = errors.New("email requis pour confirmer la participation")
	ErrActionInFlight       = errors.New("une action de participation est déjà en cours")
	ErrNotParticipating     = errors.New("aucune participation enregistrée pour cet événement")
	ErrAlreadyParticipating = errors.New("participation déjà confirmée pour cet événement")
	ErrOrderFailed          = errors.New("impossible de confirmer la participation")
	ErrLoginFailed          = errors.New("échec de la connexion")
	ErrRegisterFailed       = errors.New("échec de l'inscription")
	ErrRequestFailed        = errors.New("requête refusée par le serveur")
	ErrNotAuthenticated     = errors.New("utilisateur non authentifié")
	ErrNotAdmin             = errors.New("réservé aux administrateurs")
	ErrPasswordTooShort     = errors.New("le mot de passe doit contenir au moins 6 caractères")
	ErrInvalidEvent         = errors.New("données d'événement invalides")
	ErrAvatarTooLarge       = errors.New("l'image ne doit pas dépasser 2 Mo")
	ErrAvatarNotImage       = errors.New("le fichier n'est pas une image")
	ErrProfileUpdateFailed  = errors.New("échec de la mise à jour du profil")
)

var codes = []struct {
	err  error
	code string
}{
	{ErrEventUnavailable, "event_unavailable"},
	{ErrEventFull, "event_full"},
	{ErrEventPast, "event_past"},
	{ErrEmailRequired, "email_required"},
	{ErrActionInFlight, "action_in_flight"},
	{ErrNotParticipating, "not_participating"},
	{ErrAlreadyParticipating, "already_participating"},
	{ErrOrderFailed, "order_failed"},
	{ErrLoginFailed, "login_failed"},
	{ErrRegisterFailed, "register_failed"},
	{ErrRequestFailed, "request_failed"},
	{ErrNotAuthenticated, "not_authenticated"},
	{ErrNotAdmin, "not_admin"},
	{ErrPasswordTooShort, "password_too_short"},
	{ErrInvalidEvent, "invalid_event"},
	{ErrAvatarTooLarge, "avatar_too_large"},
	{ErrAvatarNotImage, "avatar_not_image"},
	{ErrProfileUpdateFailed, "profile_update_failed"},
}

// Code returns the stable code of the domain error wrapped by err, or "" when
// err does not wrap a domain error.
func Code(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}

// DetailedError is implemented by errors carrying a human-readable message
// extracted from a backend response.
type DetailedError interface {
	error
	Detail() string
}

// Detail returns the backend-provided message wrapped by err, if any.
func Detail(err error) string {
	var d DetailedError
	if errors.As(err, &d) {
		return d.Detail()
	}
	return ""
}
