package model

type TruthPrompt struct {
	ID       int
	Question string
	Used     bool
}

type Category string

const (
	CategoryBody      Category = "body"
	CategoryLearning  Category = "learning"
	CategoryEmotional Category = "emotional"
)

type DareChallenge struct {
	ID        int
	Category  Category
	Challenge string
}
