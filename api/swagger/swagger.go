package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "TrainHub Scheduler API",
        "description": "Trainer and TA scheduling backend: task CRUD, reconciled day schedules, calendar exports and bulk imports.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Tasks", "description": "Task and engagement management"},
        {"name": "Trainers", "description": "Trainer roster"},
        {"name": "Colleges", "description": "Client college directory"},
        {"name": "Schedule", "description": "Reconciled day schedules and calendar views"},
        {"name": "Exports", "description": "Calendar downloads"},
        {"name": "Imports", "description": "Bulk event ingestion"}
    ],
    "paths": {
        "/tasks": {
            "get": {
                "tags": ["Tasks"],
                "summary": "List tasks",
                "parameters": [
                    {"name": "trainer_id", "in": "query", "type": "string"},
                    {"name": "type", "in": "query", "type": "string", "enum": ["training", "non-training"]},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "start_date", "in": "query", "type": "string"},
                    {"name": "end_date", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Tasks"],
                "summary": "Create task",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTaskRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tasks/{id}": {
            "get": {
                "tags": ["Tasks"],
                "summary": "Get task",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Tasks"],
                "summary": "Replace task",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTaskRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Tasks"],
                "summary": "Delete task",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/tasks/{id}/status": {
            "patch": {
                "tags": ["Tasks"],
                "summary": "Transition task status",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateTaskStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/trainers": {
            "get": {
                "tags": ["Trainers"],
                "summary": "List trainers",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "specialization", "in": "query", "type": "string"},
                    {"name": "available", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/trainers/{id}": {
            "get": {
                "tags": ["Trainers"],
                "summary": "Get trainer",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Trainers"],
                "summary": "Update trainer profile",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateTrainerRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/colleges": {
            "get": {
                "tags": ["Colleges"],
                "summary": "List client colleges",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/colleges/{id}": {
            "get": {
                "tags": ["Colleges"],
                "summary": "Get college",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule/day": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Reconciled schedule for a single day",
                "parameters": [
                    {"name": "date", "in": "query", "required": true, "type": "string"},
                    {"name": "specialization", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calendar": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Calendar events over a date range",
                "parameters": [
                    {"name": "start_date", "in": "query", "required": true, "type": "string"},
                    {"name": "end_date", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/calendar": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download the calendar as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "start_date", "in": "query", "type": "string"},
                    {"name": "end_date", "in": "query", "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/imports/events": {
            "post": {
                "tags": ["Imports"],
                "summary": "Import calendar events from JSON",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/ImportEventRecord"}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Batch rejected", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/imports/spreadsheet": {
            "post": {
                "tags": ["Imports"],
                "summary": "Import calendar events from an uploaded spreadsheet",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Batch rejected", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Task": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "trainer_id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "type": {"type": "string", "enum": ["training", "non-training"]},
                "status": {"type": "string"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "college_id": {"type": "string"},
                "course": {"type": "string"},
                "trainer_role": {"type": "string", "enum": ["trainer", "ta"]},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "CreateTaskRequest": {
            "type": "object",
            "properties": {
                "trainer_id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "type": {"type": "string", "enum": ["training", "non-training"]},
                "status": {"type": "string"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "college_id": {"type": "string"},
                "course": {"type": "string"},
                "trainer_role": {"type": "string"}
            },
            "required": ["trainer_id", "title", "type", "start_date", "end_date"]
        },
        "UpdateTaskStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string"}
            },
            "required": ["status"]
        },
        "UpdateTrainerRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "specializations": {"type": "array", "items": {"type": "string"}},
                "availability": {"type": "boolean"},
                "bio": {"type": "string"},
                "expertise": {"type": "string"}
            },
            "required": ["name", "email"]
        },
        "ImportEventRecord": {
            "type": "object",
            "properties": {
                "trainerId": {"type": "string"},
                "type": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "startDate": {"type": "string"},
                "endDate": {"type": "string"},
                "startTime": {"type": "string"},
                "endTime": {"type": "string"},
                "collegeId": {"type": "string"},
                "course": {"type": "string"},
                "status": {"type": "string"},
                "trainerRole": {"type": "string"}
            },
            "required": ["trainerId", "type", "title", "startDate", "endDate"]
        },
        "DaySchedule": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "training": {"type": "array", "items": {"$ref": "#/definitions/Assignment"}},
                "non_training": {"type": "array", "items": {"$ref": "#/definitions/Assignment"}},
                "available_trainers": {"type": "array", "items": {"type": "object"}}
            }
        },
        "Assignment": {
            "type": "object",
            "properties": {
                "trainer": {"type": "object"},
                "task": {"$ref": "#/definitions/Task"},
                "college": {"type": "object"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
