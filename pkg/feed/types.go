package feed

// versionIndex is the wire shape of GET {base}/packages/{id}/index.json.
type versionIndex struct {
	Versions []packageRecord `json:"versions"`
}

type packageRecord struct {
	ID               string            `json:"id"`
	Version          string            `json:"version"`
	Title            string            `json:"title"`
	IsPrerelease     bool              `json:"isPrerelease"`
	IsLatestVersion  bool              `json:"isLatestVersion"`
	DownloadURL      string            `json:"downloadUrl"`
	DependencyGroups []dependencyGroup `json:"dependencyGroups"`
}

// dependencyGroup scopes a list of dependency records to one target
// framework. An empty targetFramework applies to every framework.
type dependencyGroup struct {
	TargetFramework string             `json:"targetFramework"`
	Dependencies    []dependencyRecord `json:"dependencies"`
}

type dependencyRecord struct {
	ID    string `json:"id"`
	Range string `json:"range"`
}
