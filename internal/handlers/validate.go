package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for form fields.
const (
	minPostTitleLen    = 5
	maxPostTitleLen    = 255
	maxPostContentLen  = 100_000
	minCategoryNameLen = 3
	minCategorySlugLen = 3
	maxNameLen         = 255
)

// validatePost checks post form inputs and returns the first error found.
func validatePost(title, content string) string {
	title = strings.TrimSpace(title)
	if utf8.RuneCountInString(title) < minPostTitleLen {
		return "Le titre doit contenir au moins 5 caractères."
	}
	if utf8.RuneCountInString(title) > maxPostTitleLen {
		return "Le titre est trop long (255 caractères maximum)."
	}
	if strings.TrimSpace(content) == "" {
		return "Le contenu est obligatoire."
	}
	if utf8.RuneCountInString(content) > maxPostContentLen {
		return "Le contenu est trop long (100 000 caractères maximum)."
	}
	return ""
}

// validateCategory checks category form inputs. The slug is validated
// after auto-generation, so an empty slug never reaches this point.
func validateCategory(name, slug string) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < minCategoryNameLen {
		return "Le nom doit contenir au moins 3 caractères."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Le nom est trop long (255 caractères maximum)."
	}
	if utf8.RuneCountInString(slug) < minCategorySlugLen {
		return "Le slug doit contenir au moins 3 caractères."
	}
	if utf8.RuneCountInString(slug) > maxNameLen {
		return "Le slug est trop long (255 caractères maximum)."
	}
	return ""
}

// validateAuthor checks author form inputs.
func validateAuthor(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Le nom est obligatoire."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Le nom est trop long (255 caractères maximum)."
	}
	return ""
}
