package core

// UserContext describes the person asking a question. All fields are
// optional; missing values fall back to generic defaults during prompt
// assembly.
type UserContext struct {
	// ID is the stable user identifier used to scope document ownership.
	ID string
	// Name is the display name used in prompts and greetings.
	Name string
	// Location is a free-text place name, used for weather lookups.
	Location string
	// Language is the user's preferred language code (en, ha, yo, ig, ff).
	// Empty means detect from the message.
	Language string
	// FarmingInterests lists crops or topics the user cares about.
	FarmingInterests []string
	// PreferredProvider and PreferredModel are the user's stored AI settings.
	PreferredProvider string
	PreferredModel    string
}

// ConversationTurn is one prior exchange in a conversation, newest first
// when passed as a slice.
type ConversationTurn struct {
	Message  string
	Response string
}

// WeatherSnapshot holds current conditions for a location, plus a short
// farming advisory derived from them.
type WeatherSnapshot struct {
	Location    string
	Description string
	// Temperature in degrees Celsius.
	Temperature float64
	// Humidity as a percentage.
	Humidity int
	// WindSpeed in meters per second.
	WindSpeed float64
	// RainfallMM is rainfall over the last hour in millimeters.
	RainfallMM float64
	Advisory   string
}

// DocumentChunk is one bounded, overlapping slice of an uploaded document
// as stored in the vector index.
type DocumentChunk struct {
	// ID is "{storageKey}_{index}".
	ID string
	// OwnerID is the uploading user, used for scoped deletes and stats.
	OwnerID string
	// Source is the original filename of the document.
	Source string
	// Index is the chunk's ordinal position within the document.
	Index int
	// TotalChunks is the number of chunks the document was split into.
	TotalChunks int
	Text        string
	// Relevance is the agricultural relevance score of this chunk, in [0, 1].
	Relevance float64
	// CreatedAt is the ingestion time as a Unix timestamp.
	CreatedAt int64
	// Vector is the embedding of Text.
	Vector []float32
}

// ChunkMatch pairs a stored chunk with its raw vector distance from a query.
type ChunkMatch struct {
	Chunk DocumentChunk
	// Distance is the L2 distance reported by the index (smaller is closer).
	Distance float32
}

// RetrievalResult is one ranked passage returned to the answer pipeline.
type RetrievalResult struct {
	Content    string
	Source     string
	ChunkIndex int
	// Similarity is max(0, 1 - distance).
	Similarity float64
	// Relevance is the chunk's stored agricultural relevance score.
	Relevance float64
	// CombinedScore blends similarity and relevance and orders results.
	CombinedScore float64
}

// ModelInfo describes one model offered by an answer provider.
type ModelInfo struct {
	ID          string
	Name        string
	Description string
	// Cost is a coarse tier label ("Low", "Medium", "High", "Free").
	Cost string
}

// ProviderProfile describes an answer provider for settings catalogs.
type ProviderProfile struct {
	ID           string
	Name         string
	Description  string
	Models       []ModelInfo
	DefaultModel string
	Available    bool
}

// AnswerResult is the terminal outcome of one answered question. It is
// always populated: provider failures degrade the answer, they never
// surface as errors.
type AnswerResult struct {
	Text string
	// Confidence is the heuristic tier of the provider that answered.
	Confidence float64
	// Provider and Model identify who produced the text ("error"/"none"
	// on the degraded path).
	Provider string
	Model    string
	// Language is the resolved language code of the answer.
	Language string
	// Suggestions are follow-up questions in the answer's language.
	Suggestions []string
}

// DocumentStats summarizes the vector index contents.
type DocumentStats struct {
	// TotalDocuments counts distinct sources in the index.
	TotalDocuments int
	// TotalChunks counts every stored chunk.
	TotalChunks int
	// UserChunks counts chunks owned by the requesting user.
	UserChunks int
}
