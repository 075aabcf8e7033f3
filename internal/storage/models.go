package storage

type Level struct {
	Position    int
	Name        string
	Icon        string
	Threshold   int
	Achievement string
}

type Quest struct {
	ID          int64
	Position    int
	Title       string
	Description string
	Feats       []Feat
}

type Feat struct {
	QuestID  int64
	ID       string
	Position int
	Title    string
}
