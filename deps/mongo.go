package deps

import (
	"github.com/artworked/core/core/store"
)

// IgniteStore connects the document store named by store.driver.
func IgniteStore(container Deps) (Deps, error) {
	runtime := container.Config().Copy()
	switch runtime.Store.Driver {
	case "mongo":
		db, err := store.Dial(runtime.Store.MongoURL, runtime.Store.MongoDB)
		if err != nil {
			log.Error(err)
			log.Info(runtime.Store.MongoURL)
			return container, err
		}
		container.StoreProvider = db
	default:
		log.Warning("Using the in-memory store, data is lost on exit")
		container.StoreProvider = store.NewMemory()
	}
	return container, nil
}
