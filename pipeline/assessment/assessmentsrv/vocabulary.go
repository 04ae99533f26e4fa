package assessmentsrv

// techVocabulary is the curated set of terms treated as skills when
// mining a job description. Multi-word entries match as substrings;
// single words match on word boundaries.
var techVocabulary = []string{
	"python", "java", "javascript", "typescript", "golang", "rust",
	"c++", "c#", "ruby", "php", "swift", "kotlin", "scala", "sql",
	"react", "angular", "vue", "node", "django", "flask", "fastapi",
	"spring", "rails",
	"tensorflow", "pytorch", "keras", "scikit-learn", "pandas", "numpy",
	"machine learning", "deep learning", "nlp", "data science",
	"docker", "kubernetes", "terraform", "linux", "git",
	"aws", "azure", "gcp",
	"postgresql", "mysql", "mongodb", "redis", "kafka", "elasticsearch",
	"graphql", "rest", "grpc", "microservices", "ci/cd", "agile",
}
