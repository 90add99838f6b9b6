package employee

// ToEmployee は Dto を永続化用の Employee に変換します。
func ToEmployee(dto Dto) *Employee {
	return &Employee{
		ID:        dto.ID,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Email:     dto.Email,
	}
}

// ToDto は Employee を外部公開用の Dto に変換します。
func ToDto(e *Employee) *Dto {
	if e == nil {
		return nil
	}
	return &Dto{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
	}
}
