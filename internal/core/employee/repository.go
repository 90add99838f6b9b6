package employee

import (
	"context"
	"iter"
)

// Repository は社員ドキュメントストアの抽象です。
type Repository interface {
	// Save は ID が一致するドキュメントを上書きし、存在しなければ作成します。
	// ID が空の場合はストア側で採番します。
	Save(ctx context.Context, employee *Employee) (*Employee, error)
	// FindByID は該当がなければ ErrEmployeeNotFound を返します。
	FindByID(ctx context.Context, id string) (*Employee, error)
	// FindAll は呼び出しごとにストアへ問い合わせる遅延シーケンスを返します。順序は保証しません。
	FindAll(ctx context.Context) iter.Seq2[*Employee, error]
	// DeleteByID は ID の有無にかかわらず成功します。
	DeleteByID(ctx context.Context, id string) error
}
