package site

import "net/http"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Other() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ThemeController persists the visitor's theme in a cookie. Light is the
// default and anything unrecognized reads as light.
type ThemeController struct {
	cookieName string
}

func NewThemeController(cookieName string) *ThemeController {
	if cookieName == "" {
		cookieName = "theme"
	}
	return &ThemeController{cookieName: cookieName}
}

func (c *ThemeController) Current(r *http.Request) Theme {
	ck, err := r.Cookie(c.cookieName)
	if err != nil {
		return ThemeLight
	}
	if Theme(ck.Value) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

func (c *ThemeController) Set(w http.ResponseWriter, t Theme) {
	if t != ThemeDark {
		t = ThemeLight
	}
	http.SetCookie(w, &http.Cookie{
		Name:     c.cookieName,
		Value:    string(t),
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		SameSite: http.SameSiteLaxMode,
	})
}

// Toggle flips the current theme and returns the new one.
func (c *ThemeController) Toggle(w http.ResponseWriter, r *http.Request) Theme {
	next := c.Current(r).Other()
	c.Set(w, next)
	return next
}
