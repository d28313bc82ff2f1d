package entity

type City struct {
	ID   int64  `json:"id"`
	Name string `json:"nome"`
	UF   string `json:"uf"`
}
