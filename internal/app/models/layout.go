package models

import "github.com/a-h/templ"

type NavItem struct {
	Name string
	URL  string
}

type Navigation struct {
	Items []NavItem
}

type LayoutTempl struct {
	Title     string
	Nav       Navigation
	ActiveNav string
	Content   templ.Component
}

var MainNav = Navigation{
	Items: []NavItem{
		{Name: "Vlog Analysis", URL: "/"},
		{Name: "Hotplace Map", URL: "/#map"},
	},
}
