package cfg

type Cfg struct {
	// Input
	Input  string
	Format string

	// Output
	Output string
	Indent string

	// Application configuration
	WorkerCount int
	Debug       bool
	ShowVersion bool
	Version     string
}
