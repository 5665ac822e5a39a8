// Package catalog lists the goals of well-known Maven plugins.
package catalog

var knownGoals = map[string][]string{
	// Core Maven plugins
	"maven-clean-plugin":     {"clean", "help"},
	"maven-compiler-plugin":  {"compile", "testCompile", "help"},
	"maven-deploy-plugin":    {"deploy", "deploy-file", "help"},
	"maven-install-plugin":   {"install", "install-file", "help"},
	"maven-resources-plugin": {"resources", "testResources", "copy-resources", "help"},
	"maven-site-plugin":      {"site", "deploy", "run", "stage", "stage-deploy", "attach-descriptor", "jar", "effective-site", "help"},
	"maven-surefire-plugin":  {"test", "help"},
	"maven-failsafe-plugin":  {"integration-test", "verify", "help"},
	"maven-verifier-plugin":  {"verify", "help"},

	// Packaging
	"maven-jar-plugin":      {"jar", "test-jar", "help"},
	"maven-war-plugin":      {"war", "exploded", "inplace", "help"},
	"maven-ear-plugin":      {"ear", "generate-application-xml", "help"},
	"maven-ejb-plugin":      {"ejb", "help"},
	"maven-rar-plugin":      {"rar", "help"},
	"maven-source-plugin":   {"jar", "test-jar", "jar-no-fork", "test-jar-no-fork", "aggregate", "help"},
	"maven-javadoc-plugin":  {"javadoc", "test-javadoc", "jar", "test-jar", "aggregate", "aggregate-jar", "help"},
	"maven-shade-plugin":    {"shade", "help"},
	"maven-assembly-plugin": {"single", "assembly", "help"},

	// Reporting
	"maven-changelog-plugin":            {"changelog", "dev-activity", "file-activity", "help"},
	"maven-checkstyle-plugin":           {"checkstyle", "checkstyle-aggregate", "check", "help"},
	"maven-pmd-plugin":                  {"pmd", "cpd", "check", "cpd-check", "help"},
	"maven-project-info-reports-plugin": {"index", "dependencies", "dependency-info", "dependency-management", "dependency-convergence", "plugin-management", "plugins", "scm", "summary", "team", "help"},

	// Tools
	"maven-antrun-plugin": {"run", "help"},
	"maven-dependency-plugin": {
		"analyze", "analyze-dep-mgt", "analyze-duplicate", "analyze-only", "analyze-report",
		"build-classpath", "copy", "copy-dependencies", "get", "go-offline", "list",
		"list-repositories", "properties", "purge-local-repository", "resolve",
		"resolve-plugins", "sources", "tree", "unpack", "unpack-dependencies", "help",
	},
	"maven-enforcer-plugin": {"enforce", "display-info", "help"},
	"maven-gpg-plugin":      {"sign", "sign-and-deploy-file", "help"},
	"maven-help-plugin":     {"active-profiles", "all-profiles", "describe", "effective-pom", "effective-settings", "evaluate", "expressions", "system", "help"},
	"maven-invoker-plugin":  {"install", "integration-test", "verify", "run", "help"},
	"maven-release-plugin":  {"clean", "prepare", "rollback", "perform", "stage", "branch", "update-versions", "help"},
	"maven-scm-plugin":      {"add", "checkin", "checkout", "diff", "export", "status", "tag", "update", "help"},
	"maven-plugin-plugin":   {"descriptor", "helpmojo", "report", "addPluginArtifactMetadata", "help"},

	// Tycho
	"tycho-maven-plugin":            {"help"},
	"target-platform-configuration": {"target-platform", "help"},
	"tycho-packaging-plugin":        {"package-plugin", "package-feature", "update-consumer-pom", "help"},
	"tycho-p2-plugin":               {"update-local-index", "help"},
	"tycho-p2-director-plugin":      {"materialize-products", "archive-products", "help"},
	"tycho-p2-publisher-plugin":     {"publish-products", "publish-categories", "publish-osgi-ee", "help"},
	"tycho-p2-repository-plugin":    {"assemble-repository", "archive-repository", "verify-repository", "help"},
	"tycho-surefire-plugin":         {"test", "plugin-test", "help"},
	"tycho-versions-plugin":         {"set-version", "update-pom", "bump-versions", "help"},

	// Third party
	"spring-boot-maven-plugin": {"run", "repackage", "start", "stop", "build-info", "build-image", "help"},
	"exec-maven-plugin":        {"exec", "java", "help"},
	"versions-maven-plugin": {
		"set", "display-dependency-updates", "display-plugin-updates", "display-property-updates",
		"use-latest-releases", "use-latest-snapshots", "use-latest-versions", "use-next-releases",
		"use-next-snapshots", "use-next-versions", "commit", "revert", "help",
	},
	"flatten-maven-plugin":       {"flatten", "clean", "help"},
	"git-changelog-maven-plugin": {"git-changelog", "help"},
	"git-commit-id-maven-plugin": {"revision", "validateRevision", "help"},
	"cyclonedx-maven-plugin":     {"makeAggregateBom", "makeBom", "help"},
	"maven-eclipse-plugin":       {"eclipse", "clean", "configure-workspace", "help"},
}

var fallbackGoals = []string{"help"}

// Goals returns the goals offered for a plugin artifactId. The result is a
// fresh copy; unknown plugins only offer "help".
func Goals(artifactID string) []string {
	goals, ok := knownGoals[artifactID]
	if !ok {
		goals = fallbackGoals
	}
	return append([]string(nil), goals...)
}

// Known reports whether the catalog lists the plugin.
func Known(artifactID string) bool {
	_, ok := knownGoals[artifactID]
	return ok
}
