package employee

// Employee は永続化される社員ドキュメントです。
type Employee struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
}

// Dto は HTTP / gRPC 境界でやり取りする社員表現です。
type Dto struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}
