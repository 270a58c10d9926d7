package catalog

// Repository репозиторий услуг, мастеров и их назначений
type Repository struct {
	db        DBExecutor
	txManager TxManager
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor, txManager TxManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}
