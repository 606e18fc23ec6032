package templates

import (
	"github.com/tmeadows/templar/pkg/query"
	"github.com/tmeadows/templar/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "template_versions", "tv").
	Project("id", "ID").
	Project("owner", "Owner").
	Project("kind", "Kind").
	Project("content", "Content").
	Project("version", "Version").
	Project("active", "Active").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var historySort = query.SortField{
	Field:      "Version",
	Descending: true,
}

const returningColumns = "id, owner, kind, content, version, active, created_at, updated_at"

func scanTemplateVersion(s repository.Scanner) (TemplateVersion, error) {
	var t TemplateVersion
	err := s.Scan(
		&t.ID,
		&t.Owner,
		&t.Kind,
		&t.Content,
		&t.Version,
		&t.Active,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}
