package extract

import (
	"strings"

	"github.com/tlcsdm/eclipse-maven-view/internal/models"
	"github.com/tlcsdm/eclipse-maven-view/internal/securexml"
)

func profilesFromDocument(doc *securexml.Document) []models.Profile {
	var profiles []models.Profile
	for _, el := range doc.ElementsByTagName("profile") {
		id := el.ChildText("id")
		if id == "" {
			continue
		}

		activeByDefault := false
		if activation := el.Child("activation"); activation != nil {
			activeByDefault = strings.EqualFold(activation.ChildText("activeByDefault"), "true")
		}

		profiles = append(profiles, models.Profile{ID: id, ActiveByDefault: activeByDefault})
	}
	return profiles
}

// pluginsFromDocument reads build/plugins/plugin of the project and of every
// profile. pluginManagement entries are declarations only and are skipped.
func pluginsFromDocument(doc *securexml.Document) []models.Plugin {
	var plugins []models.Plugin
	for _, build := range doc.ElementsByTagName("build") {
		container := build.Child("plugins")
		if container == nil {
			continue
		}

		for _, el := range container.ChildrenNamed("plugin") {
			artifactID := el.ChildText("artifactId")
			if artifactID == "" {
				continue
			}
			plugins = append(plugins, models.NewPlugin(el.ChildText("groupId"), artifactID, el.ChildText("version")))
		}
	}
	return dedupePlugins(plugins)
}

// dependenciesFromDocument reads dependencies owned by the project or a
// profile, leaving out dependencyManagement and plugin dependencies.
func dependenciesFromDocument(doc *securexml.Document) []models.Dependency {
	var deps []models.Dependency
	for _, el := range doc.ElementsByTagName("dependency") {
		container := el.Parent()
		if container == nil || container.Name != "dependencies" {
			continue
		}
		owner := container.Parent()
		if owner == nil || (owner.Name != "project" && owner.Name != "profile") {
			continue
		}

		groupID := el.ChildText("groupId")
		artifactID := el.ChildText("artifactId")
		if groupID == "" || artifactID == "" {
			continue
		}

		deps = append(deps, models.NewDependency(groupID, artifactID, el.ChildText("version"), el.ChildText("scope")))
	}
	return deps
}

// dedupePlugins keeps the first declaration of each groupId:artifactId.
func dedupePlugins(plugins []models.Plugin) []models.Plugin {
	seen := make(map[string]struct{}, len(plugins))
	result := make([]models.Plugin, 0, len(plugins))
	for _, p := range plugins {
		key := p.GroupID + ":" + p.ArtifactID
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, p)
	}
	return result
}
