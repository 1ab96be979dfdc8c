package telemetry

// CensusRow is one reef's prey breakdown at a window boundary.
type CensusRow struct {
	Tick    int32 `csv:"tick"`
	Reef    int   `csv:"reef"`
	Minnows int   `csv:"minnows"`
	Shrimp  int   `csv:"shrimp"`
	Clams   int   `csv:"clams"`
	Algae   int   `csv:"algae"`
	Total   int   `csv:"total"`
}
