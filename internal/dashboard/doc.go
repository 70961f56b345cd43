// Package dashboard wires filter selections through the KPI engines and the
// presentation adapter. Each Build is one full recomputation over the cached
// datasets and returns a Snapshot holding every KPI and figure.
package dashboard
