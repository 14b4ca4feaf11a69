package render

import "actuweb/internal/session"

// NavLink is a single entry in the top navigation bar.
type NavLink struct {
	Path    string
	Label   string
	Icon    string
	Section string
}

// NavLinks returns the navigation entries visible to the given session.
// Anonymous visitors see the public pages only; authenticated users get
// the catalog screens; admins additionally get the management screens.
func NavLinks(sess *session.Data) []NavLink {
	links := []NavLink{
		{Path: "/", Label: "Accueil", Icon: "fa-home", Section: "home"},
		{Path: "/actu", Label: "Actualités", Icon: "fa-newspaper", Section: "actu"},
	}

	if sess == nil {
		return links
	}

	links = append(links,
		NavLink{Path: "/category", Label: "Catégories", Icon: "fa-tags", Section: "category"},
		NavLink{Path: "/author", Label: "Auteurs", Icon: "fa-users", Section: "author"},
	)

	if sess.IsAdmin() {
		links = append(links,
			NavLink{Path: "/category/new", Label: "Nouvelle catégorie", Icon: "fa-plus", Section: "category-new"},
			NavLink{Path: "/admin/users", Label: "Gestion des utilisateurs", Icon: "fa-user-shield", Section: "admin-users"},
		)
	}

	return links
}
