package validators

import "go.mongodb.org/mongo-driver/bson"

var StationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"location",
			"owner_id",
			"capacity",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"location": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 200,
			},

			"owner_id": bson.M{
				"bsonType": "string",
			},

			"capacity": bson.M{
				"bsonType": "object",
				"additionalProperties": bson.M{
					"bsonType": "int",
					"minimum":  0,
				},
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"active",
					"inactive",
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
