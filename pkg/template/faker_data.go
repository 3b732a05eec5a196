package template

// =============================================================================
// Faker Data
// =============================================================================

// fakerFirstNames contains first names for name and email generation.
var fakerFirstNames = []string{
	"John", "Jane", "Bob", "Alice", "Charlie", "Diana", "Edward", "Fiona",
	"George", "Hannah", "Ivan", "Julia", "Kevin", "Laura", "Miguel", "Nora",
}

// fakerLastNames contains last names for name generation.
var fakerLastNames = []string{
	"Smith", "Doe", "Johnson", "Williams", "Brown", "Davis", "Miller",
	"Wilson", "Moore", "Taylor", "Anderson", "Thomas", "Jackson", "White",
}

// fakerDomains contains domains for email and URL generation.
var fakerDomains = []string{
	"example.com", "test.com", "mock.io", "demo.org", "sample.net",
}

// fakerWords contains filler words for short text generation.
var fakerWords = []string{
	"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "theta",
	"lambda", "sigma", "omega", "vector", "matrix", "signal", "packet",
	"record", "widget", "module", "branch", "cursor", "buffer",
}
