package api

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/simplexhq/simplex-backend/internal/cache"
)

// cachedJSON: unified cache -> fetch -> async set -> respond flow.
func cachedJSON(c *fiber.Ctx, store *cache.Cache, cacheKey string, fetch func() (interface{}, error)) error {
	if cached, err := store.Get(cacheKey); err == nil {
		return c.Type("json").SendString(cached)
	}

	data, err := fetch()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to marshal response"})
	}

	// fire-and-forget cache write
	go func(k, v string) {
		if err := store.Set(k, v); err != nil {
			log.Println("Redis set error:", err)
		}
	}(cacheKey, string(jsonData))

	return c.Type("json").SendString(string(jsonData))
}
